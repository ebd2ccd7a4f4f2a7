package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mediashelf-api/internal/middleware"
	"mediashelf-api/internal/userdata"
	"mediashelf-api/pkg/logging"
)

// UserStore is the slice of the relational store the user endpoints need.
type UserStore interface {
	GetProfile(ctx context.Context, userID string) (*userdata.Profile, error)
	UpsertProfile(ctx context.Context, profile userdata.Profile) error
	ListReviews(ctx context.Context, userID string) ([]userdata.Review, error)
	CreateReview(ctx context.Context, review userdata.Review) (*userdata.Review, error)
	ListItems(ctx context.Context, userID, listType string) ([]userdata.ListItem, error)
	AddItem(ctx context.Context, item userdata.ListItem) (*userdata.ListItem, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Stats(ctx context.Context, userID string) (*userdata.Stats, error)
}

// UserHandler passes profile, review and list records through to the
// external store. None of this touches the media cache.
type UserHandler struct {
	store UserStore
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// GetProfile handles GET /api/user/profile, creating the profile row on
// first access.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.L(ctx)
	user := middleware.UserFromContext(ctx)

	profile, err := h.store.GetProfile(ctx, user.ID)
	if err != nil {
		logger.Warn("profile fetch error", zap.Error(err))
		// Degrade to basic identity info rather than failing the page.
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         user.ID,
			"email":      user.Email,
			"username":   usernameFromEmail(user.Email),
			"avatar_url": nil,
		})
		return
	}

	if profile == nil {
		created := userdata.Profile{
			ID:        user.ID,
			Username:  usernameFromEmail(user.Email),
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		if err := h.store.UpsertProfile(ctx, created); err != nil {
			logger.Warn("profile create error", zap.Error(err))
		}
		profile = &created
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":         user.ID,
		"email":      user.Email,
		"username":   profile.Username,
		"avatar_url": profile.AvatarURL,
		"created_at": profile.CreatedAt,
	})
}

type profileUpdate struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	var update profileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	profile := userdata.Profile{ID: user.ID}
	if update.Username != nil {
		profile.Username = *update.Username
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}

	if update.Username != nil || update.AvatarURL != nil {
		if err := h.store.UpsertProfile(ctx, profile); err != nil {
			logging.L(ctx).Warn("profile update error", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update profile")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

// ListReviews handles GET /api/user/reviews.
func (h *UserHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	reviews, err := h.store.ListReviews(ctx, user.ID)
	if err != nil {
		logging.L(ctx).Warn("reviews fetch error", zap.Error(err))
		reviews = []userdata.Review{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

type reviewInput struct {
	MediaType  string `json:"media_type"`
	MediaID    string `json:"media_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// CreateReview handles POST /api/user/reviews.
func (h *UserHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	var input reviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.MediaType == "" || input.MediaID == "" {
		writeError(w, http.StatusBadRequest, "media_type and media_id are required")
		return
	}

	review, err := h.store.CreateReview(ctx, userdata.Review{
		UserID:     user.ID,
		MediaType:  input.MediaType,
		MediaID:    input.MediaID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
		CreatedAt:  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logging.L(ctx).Warn("review creation error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create review")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Review created successfully",
		"review":  review,
	})
}

// ListItems handles GET /api/user/lists?list_type=watchlist.
func (h *UserHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	items, err := h.store.ListItems(ctx, user.ID, r.URL.Query().Get("list_type"))
	if err != nil {
		logging.L(ctx).Warn("lists fetch error", zap.Error(err))
		items = []userdata.ListItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type listItemInput struct {
	ListType  string `json:"list_type"`
	MediaType string `json:"media_type"`
	MediaID   string `json:"media_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
}

// AddItem handles POST /api/user/lists.
func (h *UserHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	var input listItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.ListType == "" || input.MediaID == "" || input.Title == "" {
		writeError(w, http.StatusBadRequest, "list_type, media_id and title are required")
		return
	}

	item, err := h.store.AddItem(ctx, userdata.ListItem{
		UserID:    user.ID,
		ListType:  input.ListType,
		MediaType: input.MediaType,
		MediaID:   input.MediaID,
		Title:     input.Title,
		ImageURL:  input.ImageURL,
		CreatedAt: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logging.L(ctx).Warn("list add error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to add item to list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Item added to list",
		"item":    item,
	})
}

// RemoveItem handles DELETE /api/user/lists/{id}.
func (h *UserHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	itemID := chi.URLParam(r, "id")
	if err := h.store.RemoveItem(ctx, user.ID, itemID); err != nil {
		logging.L(ctx).Warn("list remove error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to remove item from list")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed from list"})
}

// Stats handles GET /api/user/stats.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.UserFromContext(ctx)

	stats, err := h.store.Stats(ctx, user.ID)
	if err != nil {
		logging.L(ctx).Warn("stats fetch error", zap.Error(err))
		stats = &userdata.Stats{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func usernameFromEmail(email string) string {
	if email == "" {
		return "User"
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
