package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"clubhouse/handlers"
	"clubhouse/logger"
	"clubhouse/middleware"
	"clubhouse/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // mobile clients connect from app webviews
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
	eventHandler *handlers.EventHandler,
	scoreHandler *handlers.ScoreHandler,
	gameHandler *handlers.GameHandler,
	financeHandler *handlers.FinanceHandler,
	hub *services.Hub,
	memberService *services.MemberService,
	jwtSecret string,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public reads and player-facing writes
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.GET("/events/:id/leaderboard", eventHandler.Leaderboard)
		api.GET("/events/:id/flights", eventHandler.FlightSheet)
		api.GET("/events/:id/groupings", eventHandler.GetGroupings)
		api.GET("/events/:id/watchers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"member_ids": hub.ConnectedMembers(c.Param("id"))})
		})
		api.GET("/events/:id/scores", scoreHandler.ListScores)
		api.POST("/events/:id/scores", scoreHandler.SubmitScore)
		api.POST("/events/:id/scores/offline", scoreHandler.QueueOffline)
		api.POST("/events/:id/scores/sync/:day", scoreHandler.SyncPending)

		// Personal games are open to non-members with the join code
		games := api.Group("/games")
		{
			games.POST("", gameHandler.CreateGame)
			games.GET("/:code", gameHandler.GetGameByCode)
			games.PUT("/id/:id/players", gameHandler.UpsertPlayer)
			games.POST("/id/:id/settle", gameHandler.Settle)
		}

		// Admin routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			members := protected.Group("/members")
			{
				members.GET("", memberHandler.ListMembers)
				members.POST("", memberHandler.CreateMember)
				members.POST("/import", memberHandler.ImportRoster)
				members.GET("/:id", memberHandler.GetMember)
				members.PUT("/:id", memberHandler.UpdateMember)
				members.DELETE("/:id", memberHandler.DeleteMember)
			}

			events := protected.Group("/events")
			{
				events.POST("", eventHandler.CreateEvent)
				events.PUT("/:id", eventHandler.UpdateEvent)
				events.PUT("/:id/status", eventHandler.UpdateStatus)
				events.POST("/:id/registrations", eventHandler.Register)
				events.DELETE("/:id/registrations/:memberId", eventHandler.Unregister)
				events.PUT("/:id/groupings/:day/:hole", eventHandler.PutGrouping)

				events.GET("/:id/finance", financeHandler.ListRecords)
				events.POST("/:id/finance", financeHandler.AddRecord)
				events.DELETE("/:id/finance/:recordId", financeHandler.DeleteRecord)
				events.GET("/:id/finance/summary", financeHandler.Summary)
			}

			protected.GET("/payments/link", financeHandler.PaymentLink)
		}
	}

	// WebSocket endpoint for live event updates. Clients get a ping when
	// something changed and re-fetch over the REST API; memberID 0 is an
	// admin console connection.
	router.GET("/ws/:eventID/:memberID", func(c *gin.Context) {
		eventID := c.Param("eventID")
		memberIDStr := c.Param("memberID")

		memberID, err := strconv.ParseUint(memberIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
			return
		}

		name := c.Query("name")
		if memberID != 0 {
			member, err := memberService.GetMember(uint(memberID))
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Member not found"})
				return
			}
			if name == "" {
				name = member.Name
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Get().WithError(err).
				WithField("event", eventID).Warn("websocket upgrade failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		logger.Get().WithField("event", eventID).
			WithField("member", fmt.Sprint(memberID)).Debug("websocket connected")
		hub.RegisterClient(conn, eventID, uint(memberID), name)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
