package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rightsquest/backend/config"
	"rightsquest/backend/controllers"
	"rightsquest/backend/middleware"
	"rightsquest/backend/services"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Get("/api/auth/status", authController.Status)
	app.Get("/api/auth/user", authController.GetUser)
	app.Post("/api/auth/logout", authController.Logout)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Game progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/game-progress", authMiddleware, progressController.GetGameProgress)
	app.Post("/api/game-progress", authMiddleware, progressController.UpdateGameProgress)

	// Level map
	levelsController := controllers.NewLevelsController(db, cfg)
	app.Get("/api/levels", authMiddleware, levelsController.GetLevels)

	// Chatbot relay
	chatbotController := controllers.NewChatbotController(services.NewLLMClient(cfg), logger)
	app.Post("/api/chatbot", chatbotController.Chat)

	// Forum routes
	forumController := controllers.NewForumController(db, cfg)
	forum := app.Group("/api/forum")
	forum.Get("/posts", forumController.GetPosts)
	forum.Post("/posts", authMiddleware, forumController.CreatePost)
	forum.Post("/posts/:id/replies", authMiddleware, forumController.AddReply)
	forum.Post("/posts/:id/report", authMiddleware, forumController.ReportPost)

	// Group chat rooms
	groupsController := controllers.NewGroupsController(db, cfg)
	groups := app.Group("/api/groups", authMiddleware)
	groups.Get("/", groupsController.GetGroups)
	groups.Post("/", groupsController.CreateGroup)
	groups.Post("/:id/participants", groupsController.AddParticipant)

	// Leaderboard
	leaderboardController := controllers.NewLeaderboardController(db, cfg)
	app.Get("/api/leaderboard", authMiddleware, leaderboardController.GetLeaderboard)
}
