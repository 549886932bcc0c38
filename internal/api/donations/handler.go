package donations

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"church-app/config"
	"church-app/database"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/access"
	"church-app/internal/domain/donations"
	"church-app/internal/infra/paypal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gateway is the payment collaborator, swapped for a fake in tests.
var Gateway paypal.Gateway

// parseAmount accepts the amount as a JSON number or a numeric string
// and rejects anything that is not strictly positive.
func parseAmount(v interface{}) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, errors.New("Invalid amount")
		}
		f = parsed
	case nil:
		return 0, errors.New("Amount is required")
	default:
		return 0, errors.New("Invalid amount")
	}
	if f <= 0 {
		return 0, errors.New("Amount must be greater than 0")
	}
	return f, nil
}

// POST /donations/create/
// Starts a gateway payment and records the donation as PENDING. Nothing
// is persisted when the gateway call fails.
func CreateDonation(c *gin.Context) {
	var body struct {
		Amount      interface{} `json:"amount"`
		Currency    string      `json:"currency"`
		IsAnonymous bool        `json:"is_anonymous"`
		ReturnURL   string      `json:"return_url"`
		CancelURL   string      `json:"cancel_url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
		return
	}
	amount, err := parseAmount(body.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "EUR"
	}
	returnURL := body.ReturnURL
	if returnURL == "" {
		returnURL = config.FRONTEND_URL + "/donation/success"
	}
	cancelURL := body.CancelURL
	if cancelURL == "" {
		cancelURL = config.FRONTEND_URL + "/donation/cancel"
	}

	payment, err := Gateway.CreatePayment(c.Request.Context(), amount, currency, returnURL, cancelURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var userID *uint
	if user := middleware.OptionalUser(c); user != nil {
		userID = &user.ID
	}

	donation := donations.Donation{
		UserID:          userID,
		Amount:          amount,
		Currency:        currency,
		PayPalPaymentID: payment.ID,
		IsAnonymous:     body.IsAnonymous,
		Status:          donations.StatusPending,
	}
	if err := database.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"donation_id":       donation.ID,
		"paypal_payment_id": payment.ID,
		"approval_url":      payment.ApprovalURL,
	})
}

// POST /donations/execute/
// Gateway return callback. A COMPLETED donation is a no-op; a PENDING one
// moves to COMPLETED or FAILED depending on the gateway answer, and the
// result is committed either way.
func ExecuteDonation(c *gin.Context) {
	var body struct {
		PaymentID string `json:"payment_id"`
		PayerID   string `json:"payer_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PaymentID == "" || body.PayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_id and payer_id are required"})
		return
	}

	var donation donations.Donation
	if err := database.DB.Where("paypal_payment_id = ?", body.PaymentID).First(&donation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if donation.Status == donations.StatusCompleted {
		c.JSON(http.StatusOK, gin.H{"status": "Donation already completed"})
		return
	}
	if donation.Status != donations.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Donation is %s, not pending", donation.Status)})
		return
	}

	payment, err := Gateway.ExecutePayment(c.Request.Context(), body.PaymentID, body.PayerID)
	if err != nil || payment == nil {
		if ferr := donation.GatewayFail(); ferr == nil {
			database.DB.Model(&donation).Update("status", donation.Status)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment execution failed"})
		return
	}

	payerID := payment.PayerID
	if payerID == "" {
		payerID = body.PayerID
	}
	if err := donation.GatewayComplete(payerID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	// Status and payer reference move together in one UPDATE.
	if err := database.DB.Model(&donation).Updates(map[string]interface{}{
		"status":          donation.Status,
		"paypal_payer_id": payerID,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Donation completed successfully"})
}

// GET /donations/
func ListDonations(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var list []donations.Donation
	if err := database.DB.
		Scopes(access.Scope(access.KindDonations, user)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load donations"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GET /donations/global-stats/
// Sums every COMPLETED donation, archived ones included.
func GlobalDonationStats(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindDonations, access.ActionViewStats) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var totalAmount float64
	if err := database.DB.Model(&donations.Donation{}).
		Where("status = ?", donations.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAmount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var totalCount int64
	if err := database.DB.Model(&donations.Donation{}).
		Where("status = ?", donations.StatusCompleted).
		Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":         user.Role,
		"total_amount": totalAmount,
		"total_count":  totalCount,
		"currency":     "EUR",
		"message":      "Global statistics",
	})
}

// POST /donations/declare/
// Records a manual donation (bank transfer, cash, ...) as PENDING until an
// admin validates it. No gateway call; the payment reference is synthetic.
func DeclareDonation(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Amount        interface{} `json:"amount"`
		Currency      string      `json:"currency"`
		Project       string      `json:"project"`
		PaymentMethod string      `json:"payment_method"`
		Notes         string      `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
		return
	}
	amount, err := parseAmount(body.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = "EUR"
	}
	project := body.Project
	if project == "" {
		project = "general"
	}
	method := body.PaymentMethod
	if method == "" {
		method = "other"
	}

	// Namespaced by user so two concurrent declares can never collide;
	// the unique index backs this up at the storage layer.
	reference := fmt.Sprintf("MANUAL-%d-%s", user.ID,
		strings.ReplaceAll(uuid.NewString(), "-", "")[:12])

	donation := donations.Donation{
		UserID:          &user.ID,
		Amount:          amount,
		Currency:        currency,
		Project:         project,
		PaymentMethod:   method,
		Notes:           body.Notes,
		PayPalPaymentID: reference,
		Status:          donations.StatusPending,
		IsAnonymous:     false,
	}
	if err := database.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation declared successfully. Awaiting admin validation.",
		"donation": donation,
	})
}

// PATCH /donations/:id/update-status/
// Admin override: any status from the closed enum, no adjacency check.
func UpdateDonationStatus(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindDonations, access.ActionUpdateStatus) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only administrators can update donation status"})
		return
	}

	var donation donations.Donation
	if err := database.DB.First(&donation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newStatus := donations.Status(body.Status)
	if err := donations.AdminOverride(&donation, newStatus, user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed values: COMPLETED, CANCELLED, PENDING, FAILED"})
		return
	}

	if err := database.DB.Model(&donation).Update("status", newStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Donation status updated: %s", newStatus),
		"donation": donation,
	})
}

// DELETE /donations/:id/delete/
// Soft delete: the row is archived, never removed, so totals keep
// counting it.
func ArchiveDonation(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !access.Can(user, access.KindDonations, access.ActionArchive) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only administrators can archive donations"})
		return
	}

	var donation donations.Donation
	if err := database.DB.First(&donation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if err := database.DB.Model(&donation).Update("is_archived", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Donation of %.2f %s archived successfully (amount still counted)",
			donation.Amount, donation.Currency),
	})
}
