package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/mindwellbackend/chatbot"
	"github.com/camden-git/mindwellbackend/config"
	"github.com/camden-git/mindwellbackend/database"
	"github.com/camden-git/mindwellbackend/emotion"
	"github.com/camden-git/mindwellbackend/handlers"
	"github.com/camden-git/mindwellbackend/realtime"
	"github.com/camden-git/mindwellbackend/repository"
	"github.com/camden-git/mindwellbackend/vision"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.ModelsPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to run database migrations: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to access underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	moodRepo := repository.NewMoodEntryRepository(db)

	detector, err := vision.NewCascadeDetector(cfg.FaceCascadePath, cfg.CascadeScaleFactor, cfg.CascadeMinNeighbors)
	if err != nil {
		log.Fatalf("FATAL: Failed to load face cascade from %s: %v", cfg.FaceCascadePath, err)
	}
	defer detector.Close()

	classifier := emotion.LoadOrCreate(cfg.EmotionModelPath)
	session := emotion.NewSession(detector, classifier)

	bot := chatbot.New()

	hub := realtime.NewHub()
	go hub.Run()

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Using emotion model: %s (trained: %t)", cfg.EmotionModelPath, classifier.Trained)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler.Handler)

	emotionHandler := &handlers.EmotionHandler{Session: session, Cfg: cfg}
	moodHandler := &handlers.MoodHandler{Repo: moodRepo, SQL: sqlDB, Hub: hub}
	chatHandler := &handlers.ChatHandler{Bot: bot}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/analyze-emotion", emotionHandler.AnalyzeEmotion)

		r.Post("/mood-entry", moodHandler.CreateMoodEntry)
		r.Get("/mood-entries", moodHandler.ListMoodEntries)
		r.Get("/mood-analytics/{user_id}", moodHandler.GetMoodAnalytics)

		r.Post("/chat", chatHandler.Chat)
		r.Get("/chat/history/{user_id}", chatHandler.GetChatHistory)
		r.Get("/recommendations/{emotion}", chatHandler.GetRecommendations)

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":"healthy","model_loaded":%t,"timestamp":%q}`,
				classifier.Trained, time.Now().UTC().Format(time.RFC3339))
		})
	})

	// websocket routes stay outside the request timeout middleware
	r.Get("/ws/emotion-stream", emotionHandler.StreamEmotion)
	r.Get("/ws/events", hub.ServeWS)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
