package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskhive/taskhive/broker"
	"taskhive/taskhive/config"
	"taskhive/taskhive/database"
	"taskhive/taskhive/middleware"
	"taskhive/taskhive/routes"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Event publishing is optional; the API works without a broker.
	if cfg.NATSUrl != "" {
		if err := broker.InitProducer(cfg.NATSUrl); err != nil {
			log.Printf("Warning: Failed to initialize NATS producer: %v", err)
			log.Println("The application will continue without event publishing")
		} else {
			defer broker.CloseProducer()
		}
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	services.EmailServiceInstance = emailService

	userService := services.NewUserService(authService, emailService)
	services.UserServiceInstance = userService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterAuthRoutes(router, db, authService, userService)

	api := router.Group("/api/v1", middleware.AuthMiddleware(authService))
	routes.RegisterTaskRoutes(api, db)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
