package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"saathi_server/repository"
	"saathi_server/routes"
	"saathi_server/services"
	"saathi_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Pick the storage backend. The in-memory store is the default; Dynamo is
	// opt-in for deployments with real persistence.
	var (
		profileRepo      repository.ProfileRepository
		conversationRepo repository.ConversationRepository
		notificationRepo repository.NotificationRepository
	)
	switch os.Getenv("STORAGE_BACKEND") {
	case "dynamo":
		log.Println("Initializing DynamoDB client...")
		client := repository.InitializeDynamoDBClient()
		profileRepo = &repository.DynamoProfileRepository{Client: client}
		conversationRepo = &repository.DynamoConversationRepository{Client: client}
		notificationRepo = &repository.DynamoNotificationRepository{Client: client}
		log.Println("DynamoDB client initialized.")
	default:
		latency := time.Duration(0)
		if ms, err := strconv.Atoi(os.Getenv("SIMULATED_LATENCY_MS")); err == nil && ms > 0 {
			latency = time.Duration(ms) * time.Millisecond
		}
		log.Printf("Using in-memory storage (simulated latency: %v)", latency)
		profileRepo = repository.NewMemoryProfileRepository(latency)
		conversationRepo = repository.NewMemoryConversationRepository(latency)
		notificationRepo = repository.NewMemoryNotificationRepository(latency)

		if err := repository.SeedDemoData(context.Background(), profileRepo); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Demo data seeded.")
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	// Initialize Services
	registry := services.NewListenerRegistry()
	notificationService := &services.NotificationService{Notifications: notificationRepo}
	profileService := &services.ProfileService{
		Profiles:      profileRepo,
		Notifier:      notificationService,
		AdminPassword: adminPassword,
	}
	interestService := services.NewInterestService(profileRepo, conversationRepo, notificationService)
	chatService := services.NewChatService(conversationRepo, profileRepo, registry)
	mediaService := &services.MediaService{
		Client: services.InitializeS3Client(),
		Bucket: os.Getenv("S3_BUCKET_NAME"),
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register routes
	routes.RegisterRoutes(r)
	routes.RegisterAuthRoutes(r, profileService)
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterInterestRoutes(r, interestService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterNotificationRoutes(r, notificationService)
	routes.RegisterMediaRoutes(r, mediaService)

	// Socket.IO push for open conversations
	socketServer := socket.NewSocketServer(chatService, registry)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
