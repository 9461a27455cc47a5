package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/huyng/kanban-api/internal/auth"
	"github.com/huyng/kanban-api/internal/config"
	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/events"
	"github.com/huyng/kanban-api/internal/handlers"
	"github.com/huyng/kanban-api/internal/middleware"
	"github.com/huyng/kanban-api/internal/notifier"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/huyng/kanban-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Event bus with email notifications
	bus := events.NewBus()
	defer bus.Close()
	notifier.NewEmailNotifier(cfg).Subscribe(bus)

	// Token manager
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiryHours)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)
	labelRepo := repository.NewLabelRepository(db)

	// Services
	membership := services.NewMembershipService(boardRepo)
	authService := services.NewAuthService(userRepo, tokens, bus)
	boardService := services.NewBoardService(boardRepo, membership)
	columnService := services.NewColumnService(columnRepo, boardRepo, membership)
	cardService := services.NewCardService(cardRepo, columnRepo, userRepo, membership, bus)
	labelService := services.NewLabelService(labelRepo, cardRepo, columnRepo, boardRepo, membership)

	// Background position maintenance
	rebalancer := services.NewRebalancer(boardRepo, columnRepo, cardRepo)
	if err := rebalancer.Start(cfg.RebalanceSchedule); err != nil {
		log.Fatalf("Failed to start rebalancer: %v", err)
	}
	defer rebalancer.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	cardHandler := handlers.NewCardHandler(cardService)
	labelHandler := handlers.NewLabelHandler(labelService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// Board routes (protected)
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth(tokens))
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
			boards.POST("/:id/members", boardHandler.AddMember)
			boards.POST("/:id/columns", columnHandler.CreateColumn)
			boards.GET("/:id/columns", columnHandler.ListColumns)
			boards.POST("/:id/labels", labelHandler.CreateLabel)
			boards.GET("/:id/labels", labelHandler.ListLabels)
		}

		// Column routes (protected)
		columns := api.Group("/columns")
		columns.Use(middleware.RequireAuth(tokens))
		{
			columns.PATCH("/:id", columnHandler.UpdateColumn)
			columns.POST("/:id/archive", columnHandler.ArchiveColumn)
			columns.POST("/:id/unarchive", columnHandler.UnarchiveColumn)
			columns.DELETE("/:id", columnHandler.DeleteColumn)
			columns.POST("/:id/cards", cardHandler.CreateCard)
			columns.GET("/:id/cards", cardHandler.ListCards)
		}

		// Card routes (protected)
		cards := api.Group("/cards")
		cards.Use(middleware.RequireAuth(tokens))
		{
			cards.PATCH("/:id", cardHandler.UpdateCard)
			cards.POST("/:id/archive", cardHandler.ArchiveCard)
			cards.POST("/:id/unarchive", cardHandler.UnarchiveCard)
			cards.DELETE("/:id", cardHandler.DeleteCard)
			cards.POST("/:id/assignees", cardHandler.AddAssignee)
			cards.GET("/:id/assignees", cardHandler.ListAssignees)
			cards.POST("/:id/labels/:labelId", labelHandler.AttachLabel)
			cards.DELETE("/:id/labels/:labelId", labelHandler.DetachLabel)
		}

		// Label routes (protected)
		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth(tokens))
		{
			labels.PATCH("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
