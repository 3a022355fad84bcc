// Package catalog computes effective prices: the price a caller sees for a
// dish after applying the active offer covering the reference date.
package catalog

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

var one = decimal.NewFromInt(1)

// OfferPrice applies a reduction to a base price, rounded half-up to two
// decimals (3.50 at reduction 0.70 yields 1.05).
func OfferPrice(base models.Money, reduction decimal.Decimal) models.Money {
	return models.NewMoney(base.Mul(one.Sub(reduction)).Round(2))
}

// pickOffer selects the winning offer among those covering the reference
// date for a single dish. Supersession should leave at most one; when more
// survive (a data anomaly) the latest start_date wins and the anomaly is
// logged rather than failing the read.
func pickOffer(offers []models.Offer) *models.Offer {
	if len(offers) == 0 {
		return nil
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.StartDate > best.StartDate {
			best = o
		}
	}
	if len(offers) > 1 {
		slog.Warn("multiple active offers cover the same date",
			"dish_id", best.DishID,
			"count", len(offers),
			"picked_offer_id", best.ID,
		)
	}
	return &best
}

// ResolveMenu attaches offer prices to dishes in one pass over the active
// offer set. Dishes without a covering offer keep a nil OfferPrice.
func ResolveMenu(dishes []models.Dish, activeOffers []models.Offer) []models.Dish {
	byDish := make(map[int][]models.Offer, len(activeOffers))
	for _, o := range activeOffers {
		byDish[o.DishID] = append(byDish[o.DishID], o)
	}

	resolved := make([]models.Dish, len(dishes))
	for i, d := range dishes {
		d.OfferPrice = nil
		if offer := pickOffer(byDish[d.ID]); offer != nil {
			price := OfferPrice(d.Price, offer.Reduction)
			d.OfferPrice = &price
		}
		resolved[i] = d
	}
	return resolved
}

// ResolveDish attaches the effective price to a single dish given the
// active offers covering the reference date.
func ResolveDish(dish models.Dish, activeOffers []models.Offer) models.Dish {
	var covering []models.Offer
	for _, o := range activeOffers {
		if o.DishID == dish.ID {
			covering = append(covering, o)
		}
	}
	dish.OfferPrice = nil
	if offer := pickOffer(covering); offer != nil {
		price := OfferPrice(dish.Price, offer.Reduction)
		dish.OfferPrice = &price
	}
	return dish
}

// GroupByCategory folds a resolved dish list into the per-category menu
// sections the catalog endpoint serves, preserving dish order.
func GroupByCategory(dishes []models.Dish) []models.CategoryMenu {
	var menu []models.CategoryMenu
	index := make(map[string]int)
	for _, d := range dishes {
		i, ok := index[d.CategoryName]
		if !ok {
			i = len(menu)
			index[d.CategoryName] = i
			menu = append(menu, models.CategoryMenu{CategoryName: d.CategoryName})
		}
		menu[i].Dishes = append(menu[i].Dishes, d)
	}
	return menu
}
