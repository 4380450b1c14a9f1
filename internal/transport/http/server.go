package http

import (
	"fmt"
	"log"
	stdhttp "net/http"

	"commentboard/internal/config"
	"commentboard/internal/database"
	"commentboard/internal/handler"
	"commentboard/internal/repository"
	"commentboard/internal/service"
)

// Run loads configuration, wires the application together, and serves HTTP
// until the listener fails.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(cfg)
	notifService := service.NewNotificationService(notifRepo)
	commentService := service.NewCommentService(commentRepo, userRepo, notifService)

	// Handlers
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		NotificationHandler: handler.NewNotificationHandler(notifService),
		JWTSecret:           cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
