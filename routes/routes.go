package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/tt-championship/docs"
	"github.com/Dosada05/tt-championship/handlers"
	"github.com/Dosada05/tt-championship/logger"
	appMiddleware "github.com/Dosada05/tt-championship/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Championship *handlers.ChampionshipHandler
	Athlete      *handlers.AthleteHandler
	Group        *handlers.GroupHandler
	Match        *handlers.MatchHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, log *logger.Logger, allowedOrigins []string, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(appMiddleware.RequestLogger(log))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/championships/{championshipID}", h.WebSocket.ServeWs)

	router.Route("/championships", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/", h.Championship.Create)
		r.Get("/", h.Championship.List)

		r.Route("/{championshipID}", func(r chi.Router) {
			r.Get("/", h.Championship.GetByID)
			r.Delete("/", h.Championship.Delete)
			r.Post("/reset", h.Championship.Reset)

			r.Post("/athletes", h.Athlete.Add)
			r.Put("/athletes/{athleteID}", h.Athlete.Update)
			r.Delete("/athletes/{athleteID}", h.Athlete.Remove)

			r.Post("/groups", h.Group.Generate)
			r.Put("/groups", h.Group.SetManual)
			r.Get("/groups/{groupID}/standings", h.Group.Standings)

			r.Put("/matches/{matchID}/result", h.Match.SubmitResult)
			r.Post("/knockout", h.Match.GenerateKnockout)
		})
	})
}
