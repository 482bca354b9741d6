package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"paydash/internal/config"
	"paydash/internal/handlers"
	"paydash/internal/middleware"
	"paydash/internal/services"
	"paydash/internal/session"
)

func main() {
	cfg := config.Load()

	sessions := session.NewManager(cfg.SessionSecret)
	gateway := services.NewGatewayService(cfg.APIBaseURL)

	renderer, err := handlers.NewRenderer(cfg.TemplatesDir, sessions)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	dashboardHandler := handlers.NewDashboardHandler(gateway, sessions, renderer)
	authHandler := handlers.NewAuthHandler(gateway, sessions, renderer)
	statusHandler := handlers.NewStatusHandler(gateway, renderer)
	themeHandler := handlers.NewThemeHandler(sessions)
	reconciler := handlers.NewReconcileHandler(gateway, sessions)

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.RequestLog)
	router.Use(reconciler.Middleware)

	router.HandleFunc("/", dashboardHandler.List).Methods("GET")
	router.HandleFunc("/school", dashboardHandler.BySchool).Methods("GET")
	router.HandleFunc("/status", statusHandler.Show).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginForm).Methods("GET")
	router.HandleFunc("/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/register", authHandler.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	router.HandleFunc("/theme", themeHandler.Toggle).Methods("POST")

	// Start server
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	log.Printf("Dashboard running on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}
