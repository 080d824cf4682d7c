package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Erkhan01/football-league/handlers"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Live       *handlers.LiveMatchHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(h Handlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/", h.Tournament.CreateHandler)
			r.Get("/", h.Tournament.ListHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetByIDHandler)
				r.Put("/", h.Tournament.UpdateHandler)
				r.Delete("/", h.Tournament.DeleteHandler)
				r.Patch("/status", h.Tournament.UpdateStatusHandler)

				r.Post("/fixtures", h.Tournament.GenerateFixturesHandler)
				r.Get("/matches", h.Tournament.ListMatchesHandler)
				r.Get("/standings", h.Tournament.StandingsHandler)

				r.Post("/teams", h.Team.CreateHandler)
				r.Get("/teams", h.Team.ListByTournamentHandler)
			})
		})

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/", h.Team.GetByIDHandler)
			r.Delete("/", h.Team.DeleteHandler)
			r.Get("/stats", h.Team.StatsHandler)
			r.Post("/crest", h.Team.UploadCrestHandler)

			r.Post("/players", h.Player.CreateHandler)
			r.Get("/players", h.Player.ListByTeamHandler)
		})

		r.Get("/players/{playerID}", h.Player.GetByIDHandler)

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.Live.GetMatchHandler)
			r.Get("/live", h.Live.GetLiveDataHandler)
			r.Post("/start", h.Live.StartMatchHandler)
			r.Post("/score", h.Live.RecordGoalHandler)
			r.Post("/end", h.Live.EndMatchHandler)
			r.Post("/player/{playerID}/card/{cardType}", h.Live.RecordCardHandler)
		})
	})

	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return router
}
