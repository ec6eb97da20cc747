package routes

import (
	"net/http"
	"time"

	"pawroute/handlers"
	"pawroute/middleware"
	"pawroute/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers client account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterUser)
		api.POST("/login", hb.User.AuthenticateUser)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthClientMiddleware(hb.UserRepo))
		api.GET("/me", hb.User.GetProfile)
		api.PATCH("/me", hb.User.UpdateProfile)
		api.PUT("/me/fcm-token", hb.User.UpdateFCMToken)
		api.DELETE("/me/token", hb.User.RevokeToken)
		api.DELETE("/me", hb.User.DeleteAccount)
	}
}

// RegisterWalkerRoutes registers walker account endpoints.
func RegisterWalkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/walkers")
	{
		api.POST("/register", hb.Walker.RegisterWalker)
		api.POST("/login", hb.Walker.AuthenticateWalker)

		// Clients browse walker profiles before booking.
		api.GET("/:id", middleware.JWTAuthClientMiddleware(hb.UserRepo), hb.Walker.GetWalker)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthWalkerMiddleware(hb.WalkerRepo))
		protected.GET("/me", hb.Walker.GetProfile)
		protected.PATCH("/me", hb.Walker.UpdateProfile)
		protected.PUT("/me/fcm-token", hb.Walker.UpdateFCMToken)
		protected.DELETE("/me/token", hb.Walker.RevokeToken)
		protected.DELETE("/me", hb.Walker.DeleteAccount)
	}
}

// RegisterDogRoutes registers dog profile endpoints.
func RegisterDogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dogs")
	{
		api.Use(middleware.JWTAuthClientMiddleware(hb.UserRepo))
		api.POST("", hb.Dog.CreateDog)
		api.GET("", hb.Dog.ListMyDogs)
		api.GET("/:id", hb.Dog.GetDog)
		api.PATCH("/:id", hb.Dog.UpdateDog)
		api.POST("/:id/photo", hb.Dog.UploadDogPhoto)
		api.DELETE("/:id", hb.Dog.DeleteDog)
	}
}

// RegisterBookingRoutes registers the walk booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		client := api.Group("")
		client.Use(middleware.JWTAuthClientMiddleware(hb.UserRepo))
		client.POST("", hb.Booking.CreateBooking)
		client.PUT("/:id/cancel", hb.Booking.CancelBooking)
		client.PUT("/:id/rating", hb.Booking.RateBooking)

		walker := api.Group("")
		walker.Use(middleware.JWTAuthWalkerMiddleware(hb.WalkerRepo))
		walker.PUT("/:id/accept", hb.Booking.AcceptBooking)
		walker.PUT("/:id/start", hb.Booking.StartWalk)
		walker.PUT("/:id/complete", hb.Booking.CompleteWalk)
	}

	// Read endpoints accept either party; the handler checks ownership.
	read := r.Group("/api/bookings")
	read.Use(middleware.JWTAuthAnyMiddleware(hb.UserRepo, hb.WalkerRepo))
	read.GET("", hb.Booking.ListMyBookings)
	read.GET("/:id", hb.Booking.GetBooking)
	read.GET("/:id/receipt", hb.Booking.GetReceipt)
}

// RegisterWalkRoutes registers pack walk session and live tracking endpoints.
func RegisterWalkRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/walks")
	{
		walker := api.Group("")
		walker.Use(middleware.JWTAuthWalkerMiddleware(hb.WalkerRepo))
		walker.GET("/pack/eligible", hb.Walk.EligiblePackBookings)
		walker.POST("/pack", hb.Walk.StartPackWalk)
		walker.POST("/sessions/:id/track", hb.Walk.StartSessionTracking)
		walker.DELETE("/sessions/:id/track", hb.Walk.StopSessionTracking)
		walker.PUT("/position", hb.Walk.ReportPosition)

		read := api.Group("")
		read.Use(middleware.JWTAuthAnyMiddleware(hb.UserRepo, hb.WalkerRepo))
		read.GET("/sessions/:id", hb.Walk.GetSession)
		read.GET("/sessions/:id/breadcrumbs", hb.Walk.RecentBreadcrumbs)
		read.GET("/sessions/:id/stream", hb.Walk.StreamBreadcrumbs)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("/users", hb.Admin.ListUsers)
		api.GET("/walkers", hb.Admin.ListWalkers)
		api.GET("/bookings", hb.Admin.ListBookings)
		api.PUT("/users/:id/suspend", hb.Admin.SuspendUser)
		api.PUT("/walkers/:id/suspend", hb.Admin.SuspendWalker)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterWalkerRoutes(r, hb)
	RegisterDogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterWalkRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
