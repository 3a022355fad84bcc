package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/emintt/coffee-shop-backend-23/internal/catalog"
	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
	"github.com/emintt/coffee-shop-backend-23/internal/store"
)

type OfferHandler struct {
	Store *store.Store
}

// ListOfferDishes serves the dishes that carry an active offer on the
// reference date, with their effective prices.
// GET /api/dish/offers
func (h *OfferHandler) ListOfferDishes(w http.ResponseWriter, r *http.Request) {
	date, err := referenceDate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	dishes, err := h.Store.GetMenu(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	offers, err := h.Store.ActiveOffers(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}

	offerDishes := []models.Dish{}
	for _, dish := range catalog.ResolveMenu(dishes, offers) {
		if dish.OfferPrice != nil {
			offerDishes = append(offerDishes, dish)
		}
	}
	writeJSON(w, http.StatusOK, offerDishes)
}

type createOfferRequest struct {
	DishID    int             `json:"dish_id"`
	Reduction decimal.Decimal `json:"reduction"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// CreateOffer records a new offer, superseding any overlapping one for the
// same dish. Admin only.
// POST /api/dish/offers
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	offer := &models.Offer{
		DishID:    req.DishID,
		Reduction: req.Reduction,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := store.ValidateOffer(offer); err != nil {
		writeError(w, err)
		return
	}

	dish, err := h.Store.GetDishByID(r.Context(), offer.DishID)
	if err != nil {
		writeError(w, err)
		return
	}
	if dish == nil {
		writeError(w, errs.NotFound("dish not found"))
		return
	}

	id, err := h.Store.AddOffer(r.Context(), offer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "offer added", "offer_id": id})
}
