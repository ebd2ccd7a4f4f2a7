package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"mediashelf-api/internal/handlers"
	"mediashelf-api/internal/identity"
	"mediashelf-api/internal/metrics"
	"mediashelf-api/internal/middleware"
)

// SetupRouter wires all routes and middleware. The user routes are only
// mounted when an identity verifier is configured; the catalog endpoints
// never require authentication.
func SetupRouter(
	r *chi.Mux,
	baseLogger *zap.Logger,
	catalog *handlers.CatalogHandler,
	user *handlers.UserHandler,
	recsHandler *handlers.RecsHandler,
	verifier identity.Verifier,
	allowedOrigins []string,
) {
	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())               // panic recovery
	r.Use(middleware.Timeout(30 * time.Second)) // request timeout
	r.Use(middleware.MaxBodySize(512 * 1024))   // 512 KB max body

	r.Route("/api", func(r chi.Router) {
		r.Get("/trending/movies", catalog.TrendingMovies)
		r.Get("/trending/shows", catalog.TrendingShows)
		r.Get("/trending/books", catalog.TrendingBooks)

		r.Get("/movie/{id}", catalog.Movie)
		r.Get("/tv/{id}", catalog.TV)
		r.Get("/book/{id}", catalog.Book)

		r.Post("/recs", recsHandler.Recommend)

		if verifier != nil && user != nil {
			r.Route("/user", func(r chi.Router) {
				r.Use(middleware.RequireUser(verifier))

				r.Get("/profile", user.GetProfile)
				r.Put("/profile", user.UpdateProfile)
				r.Get("/reviews", user.ListReviews)
				r.Post("/reviews", user.CreateReview)
				r.Get("/lists", user.ListItems)
				r.Post("/lists", user.AddItem)
				r.Delete("/lists/{id}", user.RemoveItem)
				r.Get("/stats", user.Stats)
			})
		}
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
