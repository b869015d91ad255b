package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/castor/internal/http/projection"
	"github.com/MrJamesThe3rd/castor/internal/http/scenario"
)

func New(
	scenariosV1 *scenario.Handler,
	projectionsV1 *projection.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/scenarios", scenariosV1.Routes)

		r.Route("/projections", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			projectionsV1.Routes(r)
		})
	})

	return router
}
