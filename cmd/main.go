package main

import (
	"context"
	"log"
	"net/http"

	"helpdesk-app/internal/config"
	handlers "helpdesk-app/internal/handler"
	repositories "helpdesk-app/internal/repository"
	"helpdesk-app/internal/services"
	"helpdesk-app/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDB)

	shutdownManager.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Disconnect(ctx)
	})

	redisClient, err := utils.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	shutdownManager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	storage, err := utils.NewObjectStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
		cfg.MinioPublicURL,
	)
	if err != nil {
		log.Fatal("Failed to init object storage:", err)
	}

	identity := utils.NewIdentityClient(cfg.IdentityURL, cfg.IdentityServiceKey, cfg.IdentityJWTSecret)

	emailService := services.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.SMTPFrom,
	)
	notifier := services.NewNotifier(emailService, identity)

	userRepo := repositories.NewUserRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	resourceRepo := repositories.NewResourceRepository(db)

	sessions := utils.NewSessionStore(redisClient)

	authService := services.NewAuthService(userRepo, identity)
	userService := services.NewUserService(userRepo, identity)
	ticketService := services.NewTicketService(ticketRepo, notifier)
	appointmentService := services.NewAppointmentService(appointmentRepo, notifier)
	resourceService := services.NewResourceService(resourceRepo, storage, redisClient)

	authHandler := handlers.NewAuthHandler(authService, sessions)
	userHandler := handlers.NewUserHandler(userService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	resourceHandler := handlers.NewResourceHandler(resourceService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BrowserOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	router.Use(utils.SessionMiddleware(sessions, userRepo))

	handlers.RegisterRoutes(router, authHandler, userHandler, ticketHandler, appointmentHandler, resourceHandler)

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Helpdesk service running on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register("http server", func(ctx context.Context) error {
		return server.Shutdown(ctx)
	})

	select {}
}
