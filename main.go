package main

import (
	"log"
	"os"
	"time"

	"church-app/config"
	"church-app/database"
	donationsapi "church-app/internal/api/donations"
	routes "church-app/internal/app/http"
	"church-app/internal/infra/cache"
	"church-app/internal/infra/mail"
	"church-app/internal/infra/paypal"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()
	cache.InitRedis(config.REDIS_ADDR)

	smtp := config.SMTP()
	mail.Default = mail.New(mail.Config{
		From:     smtp.From,
		Password: smtp.Password,
		Host:     smtp.Host,
		Port:     smtp.Port,
	})

	gateway, err := paypal.NewClient(config.PayPal())
	if err != nil {
		log.Fatal("❌ Failed to init PayPal client:", err)
	}
	donationsapi.Gateway = gateway

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
