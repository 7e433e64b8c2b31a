package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gitlab.com/walletfy/walletfy-backend/internal/config"
	"gitlab.com/walletfy/walletfy-backend/internal/database"
	"gitlab.com/walletfy/walletfy-backend/internal/gemini"
	"gitlab.com/walletfy/walletfy-backend/internal/interactor"
	"gitlab.com/walletfy/walletfy-backend/internal/repository"
)

// Server wires the HTTP layer to the interactors.
type Server struct {
	cfg       *config.Config
	tokens    *repository.TokenRepository
	auth      *interactor.Auth
	profile   *interactor.Profile
	ledger    *interactor.Ledger
	advisor   *interactor.Advisor
	feedback  *interactor.Feedback
	assistant *gemini.Client
}

// New creates a Server. assistant may be nil when no Gemini API key is
// configured; the assistant endpoint then reports unavailability.
func New(cfg *config.Config, db database.PGXDB, assistant *gemini.Client) *Server {
	users := repository.NewUserRepository(db)
	tokens := repository.NewTokenRepository(db)
	entries := repository.NewLedgerRepository(db)
	rules := repository.NewRecommendationRepository(db)
	feedback := repository.NewFeedbackRepository(db)

	return &Server{
		cfg:       cfg,
		tokens:    tokens,
		auth:      interactor.NewAuth(users, tokens, cfg.OAuthAppName, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		profile:   interactor.NewProfile(users),
		ledger:    interactor.NewLedger(users, entries),
		advisor:   interactor.NewAdvisor(users, rules, entries),
		feedback:  interactor.NewFeedback(users, feedback),
		assistant: assistant,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()

	mux.Use(requestLogger)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	mux.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", s.handleSignup)
		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/refresh", s.handleRefresh)

		api.Group(func(private chi.Router) {
			private.Use(s.requireAuth)

			private.Post("/auth/logout", s.handleLogout)
			private.Post("/auth/password", s.handleUpdatePassword)

			private.Get("/profile", s.handleGetProfile)
			private.Post("/profile", s.handleUpdateProfile)
			private.Post("/preferences", s.handleSavePreferences)

			private.Post("/transactions", s.handleRecordTransaction)
			private.Get("/transactions", s.handleHistory)
			private.Get("/transactions/recent", s.handleRecent)
			private.Get("/transactions/filter", s.handleFilter)
			private.Get("/transactions/{id}", s.handleTransactionDetail)
			private.Delete("/transactions/{id}", s.handleDeleteTransaction)

			private.Get("/reports/monthly", s.handleMonthlyBreakdown)
			private.Get("/reports/monthly/chart", s.handleMonthlyChart)

			private.Get("/suggestions", s.handleSuggestions)
			private.Get("/comparison", s.handleComparison)

			private.Post("/feedback", s.handleFeedback)
			private.Post("/assistant", s.handleAssistant)
		})
	})

	return mux
}
