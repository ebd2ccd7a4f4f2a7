package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"mediashelf-api/internal/media"
)

// CatalogHandler serves the cached, read-only media endpoints.
type CatalogHandler struct {
	catalog *media.Catalog
}

func NewCatalogHandler(catalog *media.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// listResponse wraps trending payloads the way clients expect them.
type listResponse[T any] struct {
	Results []T `json:"results"`
}

// TrendingMovies handles GET /api/trending/movies.
func (h *CatalogHandler) TrendingMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.TrendingMovies(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[media.TrendingMovie]{Results: movies})
}

// TrendingShows handles GET /api/trending/shows.
func (h *CatalogHandler) TrendingShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.catalog.TrendingShows(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[media.TrendingShow]{Results: shows})
}

// TrendingBooks handles GET /api/trending/books.
func (h *CatalogHandler) TrendingBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.catalog.TrendingBooks(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[media.TrendingBook]{Results: books})
}

// Movie handles GET /api/movie/{id}.
func (h *CatalogHandler) Movie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	movie, err := h.catalog.Movie(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// TV handles GET /api/tv/{id}.
func (h *CatalogHandler) TV(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid show id")
		return
	}

	show, err := h.catalog.TV(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

// Book handles GET /api/book/{id}.
func (h *CatalogHandler) Book(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid book id")
		return
	}

	book, err := h.catalog.Book(r.Context(), id)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}
