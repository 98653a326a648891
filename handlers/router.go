package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"eTEats_recipes/metrics"
	"eTEats_recipes/repository"
)

// APIPrefix is where the recipe collection is mounted.
const APIPrefix = "/api/v2/recipes"

// NewRouter wires every route, metrics and CORS around d.
func NewRouter(d Deps, allowedOrigins []string) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.ImageClient == nil {
		d.ImageClient = &http.Client{Timeout: 15 * time.Second}
	}
	if d.ThumbnailHeight == 0 {
		d.ThumbnailHeight = 500
	}

	r := mux.NewRouter()
	r.Use(d.Metrics.Middleware)

	with := func(h func(Deps, http.ResponseWriter, *http.Request)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) { h(d, w, r) }
	}

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.HandleFunc("", with(SearchRecipes)).Methods(http.MethodGet)
	api.HandleFunc("/", with(SearchRecipes)).Methods(http.MethodGet)
	api.HandleFunc("", with(CreateRecipe)).Methods(http.MethodPost)
	api.HandleFunc("/", with(CreateRecipe)).Methods(http.MethodPost)
	api.HandleFunc("/{id}", with(GetRecipe)).Methods(http.MethodGet)
	api.HandleFunc("/{id}", with(DeleteRecipe)).Methods(http.MethodDelete)

	r.HandleFunc("/image", with(FetchImage)).Methods(http.MethodGet)
	r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

// NewDeps is a convenience for callers with only a repository and logger.
func NewDeps(repo repository.Repository, log *zap.Logger) Deps {
	return Deps{Repo: repo, Log: log, Metrics: metrics.New()}
}
