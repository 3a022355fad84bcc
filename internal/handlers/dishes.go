package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/emintt/coffee-shop-backend-23/internal/catalog"
	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
	"github.com/emintt/coffee-shop-backend-23/internal/store"
)

type DishHandler struct {
	Store *store.Store
	Media *MediaStore
}

// referenceDate returns the date query parameter or today. An explicit but
// malformed date is a validation error rather than a silent fallback.
func referenceDate(r *http.Request) (string, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return models.Today(), nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return "", errs.Validation(err.Error())
	}
	return date, nil
}

// Menu serves the catalog grouped by category with effective prices
// resolved for the reference date.
// GET /api/dish
func (h *DishHandler) Menu(w http.ResponseWriter, r *http.Request) {
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

	menu := catalog.GroupByCategory(catalog.ResolveMenu(dishes, offers))
	if menu == nil {
		menu = []models.CategoryMenu{}
	}
	writeJSON(w, http.StatusOK, menu)
}

// plainDish is the anonymous single-dish view: no offer pricing.
type plainDish struct {
	ID          int          `json:"dish_id"`
	Name        string       `json:"dish_name"`
	Price       models.Money `json:"dish_price"`
	Description string       `json:"description"`
	Photo       string       `json:"dish_photo"`
}

// GetDish serves one dish; authenticated callers also see the effective
// price for the reference date.
// GET /api/dish/{id}
func (h *DishHandler) GetDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation("invalid dish id"))
		return
	}

	dish, err := h.Store.GetDishByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if dish == nil {
		writeError(w, errs.NotFound("dish not found"))
		return
	}

	if ClaimsFromContext(r.Context()) == nil {
		writeJSON(w, http.StatusOK, plainDish{
			ID:          dish.ID,
			Name:        dish.Name,
			Price:       dish.Price,
			Description: dish.Description,
			Photo:       dish.Photo,
		})
		return
	}

	date, err := referenceDate(r)
	if err != nil {
		writeError(w, err)
		return
	}
	offers, err := h.Store.ActiveOffers(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.ResolveDish(*dish, offers))
}

// CreateDish adds a dish with its photo. Admin only.
// POST /api/dish
func (h *DishHandler) CreateDish(w http.ResponseWriter, r *http.Request) {
	photo, err := h.Media.SavePhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if photo == nil {
		writeError(w, errs.Validation("dish_photo is required"))
		return
	}

	name := r.FormValue("dish_name")
	priceStr := r.FormValue("dish_price")
	description := r.FormValue("description")
	categoryStr := r.FormValue("category_id")

	if name == "" || priceStr == "" || categoryStr == "" {
		writeError(w, errs.Validation("dish_name, dish_price and category_id are required"))
		return
	}
	price, err := models.MoneyFromString(priceStr)
	if err != nil || !price.IsPositive() {
		writeError(w, errs.Validation("dish_price must be a positive amount"))
		return
	}
	categoryID, err := strconv.Atoi(categoryStr)
	if err != nil {
		writeError(w, errs.Validation("invalid category_id"))
		return
	}
	exists, err := h.Store.CategoryExists(r.Context(), categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !exists {
		writeError(w, errs.NotFound("category not found"))
		return
	}

	dish := &models.Dish{
		Name:        name,
		Price:       price,
		Description: description,
		CategoryID:  categoryID,
		Photo:       photo.Filename,
		FileSize:    photo.Size,
		MediaType:   photo.MediaType,
	}
	id, err := h.Store.CreateDish(r.Context(), dish)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "new dish added", "dish_id": id})
}

// UpdateDish applies a partial update; the photo is optional.
// PUT /api/dish/{id}
func (h *DishHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation("invalid dish id"))
		return
	}

	photo, err := h.Media.SavePhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var update store.DishUpdate
	if v := r.FormValue("dish_name"); v != "" {
		update.Name = &v
	}
	if v := r.FormValue("dish_price"); v != "" {
		price, err := models.MoneyFromString(v)
		if err != nil || !price.IsPositive() {
			writeError(w, errs.Validation("dish_price must be a positive amount"))
			return
		}
		update.Price = &price
	}
	if v := r.FormValue("description"); v != "" {
		update.Description = &v
	}
	if v := r.FormValue("category_id"); v != "" {
		categoryID, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errs.Validation("invalid category_id"))
			return
		}
		exists, err := h.Store.CategoryExists(r.Context(), categoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		if !exists {
			writeError(w, errs.NotFound("category not found"))
			return
		}
		update.CategoryID = &categoryID
	}
	if photo != nil {
		update.Photo = &photo.Filename
		update.FileSize = &photo.Size
		update.MediaType = &photo.MediaType
	}

	affected, err := h.Store.UpdateDish(r.Context(), id, update)
	if err != nil {
		writeError(w, err)
		return
	}
	if affected == 0 {
		writeError(w, errs.NotFound("dish not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "dish updated", "affectedRows": affected})
}

// DeleteDish removes a dish. A missing dish is a not-found, not a
// permission failure: the role gate already ran.
// DELETE /api/dish/{id}
func (h *DishHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, errs.Validation("invalid dish id"))
		return
	}

	affected, err := h.Store.DeleteDish(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if affected == 0 {
		writeError(w, errs.NotFound("dish not found"))
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"message": "dish deleted"})
}

// Categories lists the catalog's categories.
// GET /api/categories
func (h *DishHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}
