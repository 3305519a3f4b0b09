package routes

import (
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Bracket    *handlers.BracketHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", handlers.HealthHandler)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListHandler)
		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/roster", h.Tournament.RosterHandler)
			r.Get("/brackets", h.Bracket.ListHandler)
			r.Post("/brackets", h.Bracket.CreateHandler)
		})
	})

	router.Route("/brackets/{bracketID}", func(r chi.Router) {
		r.Get("/", h.Bracket.GetByIDHandler)
		r.Get("/rounds/{round}", h.Bracket.RoundHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(opts.JWTSecret, middleware.RoleScorekeeper))

			r.Put("/games/{gameIndex}", h.Bracket.RecordResultHandler)
			r.Delete("/games/{gameIndex}", h.Bracket.ClearResultHandler)
			r.Post("/export", h.Bracket.ExportHandler)
		})
	})

	router.Get("/ws/brackets/{bracketID}", h.WebSocket.ServeWs)
}
