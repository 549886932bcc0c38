package users

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/users"
	"church-app/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UserDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Lastname    string    `json:"lastname"`
	Tel         string    `json:"tel"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Lastname:    u.Lastname,
		Tel:         u.Tel,
		Email:       u.Email,
		Role:        u.Role,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// GET /me
func GetCurrentUser(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, toDTO(user))
}

// GET /admin/users
func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]UserDTO, 0, len(all))
	for i := range all {
		out = append(out, toDTO(&all[i]))
	}

	c.JSON(http.StatusOK, out)
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword(n int) string {
	out := make([]byte, n)
	for i := range out {
		idx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out)
}

// POST /admin/pastors
// Creates a pastor account with a generated temporary password, emailed
// to the new pastor (best-effort).
func CreatePastor(c *gin.Context) {
	var body struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname" binding:"required"`
		Tel      string `json:"tel"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password := generatePassword(10)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	pastor := users.User{
		Name:         body.Name,
		Lastname:     body.Lastname,
		Tel:          body.Tel,
		Email:        body.Email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         users.RolePastor,
		IsStaff:      true,
	}
	if err := database.DB.Create(&pastor).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	message := fmt.Sprintf("%s\n\nYour pastor account has been created.\n\nEmail: %s\nTemporary password: %s\n\nPlease change it after your first login.",
		pastor.Greeting(), pastor.Email, password)
	if err := mail.Send(pastor.Email, "Your pastor account", message); err != nil {
		log.Printf("pastor credentials email to %s failed: %v", pastor.Email, err)
	}

	c.JSON(http.StatusCreated, toDTO(&pastor))
}
