package server

import (
	"net/http"

	"ecovoiceapi/internal/api"
	"ecovoiceapi/internal/api/auth"
	"ecovoiceapi/internal/api/leaderboard"
	"ecovoiceapi/internal/api/report"
	"ecovoiceapi/internal/api/user"
	"ecovoiceapi/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *api.Handler) http.Handler {

	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{config.VAR.ORIGIN},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestSize(1 << 20))

	authH := &auth.Handler{Handler: h}
	userH := &user.Handler{Handler: h}
	reportH := &report.Handler{Handler: h}
	leaderboardH := &leaderboard.Handler{Handler: h}

	router.Get("/healthz", h.Health)

	// auth endpoints
	router.Post("/auth/google-login", authH.GoogleLogin)
	router.Post("/auth/logout", h.AuthMiddleware(authH.Logout))

	// user endpoints
	router.Get("/user", h.AuthMiddleware(userH.GetUserData))
	router.Get("/user/achievements", h.AuthMiddleware(userH.GetAchievements))
	router.Post("/user/redeem-points", h.AuthMiddleware(userH.RedeemPoints))

	// report endpoints
	router.Get("/reports", reportH.GetReports)
	router.Get("/reports/feed", reportH.GetFeed)
	router.Post("/reports", h.AuthMiddleware(reportH.CreateReport))
	router.Post("/reports/image-upload-url", h.AuthMiddleware(reportH.ImageUploadUrl))
	router.Post("/reports/claim", h.AuthMiddleware(reportH.Claim))
	router.Post("/reports/vote", reportH.Vote)

	// leaderboard endpoints
	router.Get("/leaderboard", leaderboardH.GetLeaderboard)

	return router

}
