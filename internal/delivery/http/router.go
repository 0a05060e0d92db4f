package http

import (
	"github.com/gin-gonic/gin"

	"github.com/venuedate/venuedate-backend/internal/delivery/http/handler"
	"github.com/venuedate/venuedate-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	venueHandler      *handler.VenueHandler
	discoverHandler   *handler.DiscoverHandler
	swipeHandler      *handler.SwipeHandler
	chatHandler       *handler.ChatHandler
	moderationHandler *handler.ModerationHandler
	adminVenueHandler *handler.AdminVenueHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	venueHandler *handler.VenueHandler,
	discoverHandler *handler.DiscoverHandler,
	swipeHandler *handler.SwipeHandler,
	chatHandler *handler.ChatHandler,
	moderationHandler *handler.ModerationHandler,
	adminVenueHandler *handler.AdminVenueHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		venueHandler:      venueHandler,
		discoverHandler:   discoverHandler,
		swipeHandler:      swipeHandler,
		chatHandler:       chatHandler,
		moderationHandler: moderationHandler,
		adminVenueHandler: adminVenueHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			protected.GET("/me", r.profileHandler.Me)
			protected.PATCH("/me", r.profileHandler.UpdateMe)

			venues := protected.Group("/venues")
			{
				venues.GET("", r.venueHandler.List)
				venues.GET("/nearby", r.venueHandler.Nearby)
				venues.POST("/detect", r.venueHandler.Detect)
				venues.POST("/checkin", r.venueHandler.CheckIn)
				venues.POST("/checkout", r.venueHandler.CheckOut)
				venues.POST("/heartbeat", r.venueHandler.Heartbeat)
				venues.GET("/:id", r.venueHandler.Get)
				venues.GET("/:id/people", r.venueHandler.PeopleCount)
			}

			protected.GET("/discover", r.discoverHandler.Candidates)

			swipe := protected.Group("/swipe")
			{
				swipe.POST("/left", r.swipeHandler.Left)
				swipe.POST("/right", r.swipeHandler.Right)
			}
			protected.GET("/matches", r.swipeHandler.Matches)
			protected.GET("/matches/all", r.swipeHandler.AllMatches)

			protected.POST("/messages", r.chatHandler.Send)
			protected.GET("/messages/:match_id", r.chatHandler.Messages)
			protected.GET("/chats", r.chatHandler.List)

			protected.POST("/block", r.moderationHandler.Block)
			protected.POST("/unblock", r.moderationHandler.Unblock)
			protected.POST("/report", r.moderationHandler.Report)

			admin := protected.Group("/admin")
			admin.Use(r.authMiddleware.RequireAdmin())
			{
				adminVenues := admin.Group("/venues")
				{
					adminVenues.POST("", r.adminVenueHandler.Create)
					adminVenues.GET("", r.adminVenueHandler.List)
					adminVenues.GET("/stats", r.adminVenueHandler.Stats)
					adminVenues.GET("/:id", r.adminVenueHandler.Get)
					adminVenues.PATCH("/:id", r.adminVenueHandler.Update)
					adminVenues.DELETE("/:id", r.adminVenueHandler.Delete)
				}

				adminUsers := admin.Group("/users")
				{
					adminUsers.GET("", r.adminHandler.ListUsers)
					adminUsers.GET("/:id", r.adminHandler.GetUser)
					adminUsers.PATCH("/:id/status", r.adminHandler.UpdateUserStatus)
					adminUsers.DELETE("/:id", r.adminHandler.DeleteUser)
				}

				admin.GET("/reports", r.moderationHandler.ListReports)
				admin.PATCH("/reports/:id", r.moderationHandler.UpdateReport)
				admin.GET("/dashboard", r.adminHandler.Dashboard)
			}
		}
	}

	return router
}
