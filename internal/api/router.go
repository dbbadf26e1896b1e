package api

import (
	accountAPI "casino_engine/internal/api/account"
	gameAPI "casino_engine/internal/api/game"
	sessionAPI "casino_engine/internal/api/session"
	statsAPI "casino_engine/internal/api/stats"
	"casino_engine/internal/middleware"
	"casino_engine/internal/repository"
	"casino_engine/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Ledger       service.LedgerService
	Bets         service.BetService
	Achievements service.AchievementService
	Games        service.GameService
	Sessions     service.SessionService
	RTP          repository.RTPRepository
	SecretKey    []byte
	HistoryLimit int
	Log          *logrus.Logger
}

func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(deps.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	accountHandler := accountAPI.NewHandler(accountAPI.HandlerDeps{
		Ledger:       deps.Ledger,
		Bets:         deps.Bets,
		Achievements: deps.Achievements,
		HistoryLimit: deps.HistoryLimit,
	})
	gameHandler := gameAPI.NewHandler(gameAPI.HandlerDeps{Serv: deps.Games})
	sessionHandler := sessionAPI.NewHandler(sessionAPI.HandlerDeps{Serv: deps.Sessions})
	statsHandler := statsAPI.NewHandler(statsAPI.HandlerDeps{Repo: deps.RTP})

	r.Group(func(rr chi.Router) {
		rr.Use(middleware.Auth(deps.SecretKey, deps.Ledger, deps.Log))

		rr.Route("/account", func(ar chi.Router) {
			ar.Get("/", accountHandler.Me)
			ar.Get("/transactions", accountHandler.Transactions)
			ar.Get("/outcomes", accountHandler.Outcomes)
		})
		rr.Post("/transfer", accountHandler.Transfer)
		rr.Post("/daily", accountHandler.Daily)

		rr.Get("/achievements", accountHandler.Achievements)
		rr.Post("/achievements/evaluate", accountHandler.EvaluateAchievements)

		rr.Post("/games/play", gameHandler.Play)
		rr.Get("/games/double/history", gameHandler.DoubleHistory)

		rr.Route("/sessions", func(sr chi.Router) {
			sr.Post("/", sessionHandler.Start)
			sr.Get("/active", sessionHandler.Active)
			sr.Get("/{id}", sessionHandler.Get)
			sr.Post("/{id}/moves", sessionHandler.Move)
		})

		rr.Get("/stats/rtp", statsHandler.RTP)
	})

	return r
}
