package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"food-details/models"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// FoodHandler serves the foods, favorites and orders endpoints.
type FoodHandler struct {
	store Store
}

func NewFoodHandler(store Store) *FoodHandler {
	return &FoodHandler{store: store}
}

// RegisterRoutes registers the food endpoints on the given Chi router.
func (h *FoodHandler) RegisterRoutes(r chi.Router) {
	r.Get("/foods/{id}", h.GetFood)

	r.Get("/favorites", h.ListFavorites)
	r.Post("/favorites", h.CreateFavorite)
	r.Delete("/favorites/{id}", h.DeleteFavorite)

	r.Post("/orders", h.CreateOrder)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetFood returns one food with its extras.
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid food ID")
		return
	}

	food, err := h.store.GetFood(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "food not found")
			return
		}
		log.Printf("ERROR: get food %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if food.Extras == nil {
		food.Extras = []models.Extra{}
	}

	writeJSON(w, http.StatusOK, food)
}

func (h *FoodHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.store.ListFavorites(r.Context())
	if err != nil {
		log.Printf("ERROR: list favorites: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if favs == nil {
		favs = []models.Favorite{}
	}

	writeJSON(w, http.StatusOK, favs)
}

// CreateFavorite stores a favorite; posting the same id again overwrites it.
func (h *FoodHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	var fav models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fav.ID <= 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if fav.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if fav.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be >= 0")
		return
	}

	if err := h.store.UpsertFavorite(r.Context(), fav); err != nil {
		log.Printf("ERROR: upsert favorite %d: %v", fav.ID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, fav)
}

func (h *FoodHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid favorite ID")
		return
	}

	if err := h.store.DeleteFavorite(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		log.Printf("ERROR: delete favorite %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateOrder stores one order line. The id in the body is ignored.
func (h *FoodHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var o models.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if o.ProductID <= 0 {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if o.Price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be >= 0")
		return
	}
	for _, e := range o.Extras {
		if e.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "extra quantity must be > 0")
			return
		}
	}
	o.ID = 0

	created, err := h.store.CreateOrder(r.Context(), o)
	if err != nil {
		log.Printf("ERROR: create order product_id=%d: %v", o.ProductID, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
