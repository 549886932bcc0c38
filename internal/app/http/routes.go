package routes

import (
	announcementsapi "church-app/internal/api/announcements"
	authapi "church-app/internal/api/auth"
	chatapi "church-app/internal/api/chat"
	donationsapi "church-app/internal/api/donations"
	livesapi "church-app/internal/api/lives"
	prayersapi "church-app/internal/api/prayers"
	usersapi "church-app/internal/api/users"
	"church-app/internal/app/http/middleware"
	"church-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Guest-friendly routes: the actor is resolved when a token is
	// present, but anonymous callers are allowed through.
	guest := r.Group("/")
	guest.Use(middleware.OptionalAuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	guest.POST("/donations/create/", donationsapi.CreateDonation)
	guest.POST("/donations/execute/", donationsapi.ExecuteDonation)
	guest.POST("/prayers/", prayersapi.CreatePrayerRequest)
	guest.GET("/lives/active", livesapi.ActiveLiveStream)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/donations/", donationsapi.ListDonations)
	auth.GET("/donations/global-stats/", donationsapi.GlobalDonationStats)
	auth.POST("/donations/declare/", donationsapi.DeclareDonation)
	auth.PATCH("/donations/:id/update-status/", donationsapi.UpdateDonationStatus)
	auth.DELETE("/donations/:id/delete/", donationsapi.ArchiveDonation)

	auth.GET("/announcements/", announcementsapi.ListAnnouncements)
	auth.GET("/announcements/:id", announcementsapi.GetAnnouncement)
	auth.POST("/announcements/", announcementsapi.CreateAnnouncement)
	auth.PUT("/announcements/:id", announcementsapi.UpdateAnnouncement)
	auth.DELETE("/announcements/:id", announcementsapi.DeleteAnnouncement)

	auth.GET("/messages/", chatapi.ListMessages)
	auth.GET("/messages/:id", chatapi.GetMessage)
	auth.POST("/messages/", chatapi.CreateMessage)
	auth.PATCH("/messages/:id", chatapi.UpdateMessage)
	auth.DELETE("/messages/:id", chatapi.DeleteMessage)

	auth.GET("/prayers/", prayersapi.ListPrayerRequests)
	auth.GET("/prayers/:id", prayersapi.GetPrayerRequest)
	auth.PUT("/prayers/:id", prayersapi.UpdatePrayerRequest)
	auth.DELETE("/prayers/:id", prayersapi.DeletePrayerRequest)

	auth.GET("/lives/", livesapi.ListLiveStreams)
	auth.GET("/lives/:id", livesapi.GetLiveStream)
	auth.POST("/lives/", livesapi.CreateLiveStream)
	auth.PUT("/lives/:id", livesapi.UpdateLiveStream)
	auth.DELETE("/lives/:id", livesapi.DeleteLiveStream)
	auth.POST("/lives/:id/start_stream", livesapi.StartStream)
	auth.POST("/lives/:id/stop_stream", livesapi.StopStream)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/users", usersapi.ListAllUsers)
	admin.POST("/pastors", usersapi.CreatePastor)
}
