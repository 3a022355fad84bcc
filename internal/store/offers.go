package store

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

var one = decimal.NewFromInt(1)

// ValidateOffer checks an offer before any storage access: the reduction
// must lie in [0,1) and the window must be a valid, ordered date range.
func ValidateOffer(o *models.Offer) error {
	if o.DishID <= 0 {
		return errs.Validation("dish_id is required")
	}
	if o.Reduction.IsNegative() || o.Reduction.GreaterThanOrEqual(one) {
		return errs.Validation("reduction must be in [0,1)")
	}
	start, err := models.ParseDate(o.StartDate)
	if err != nil {
		return errs.Validation(err.Error())
	}
	end, err := models.ParseDate(o.EndDate)
	if err != nil {
		return errs.Validation(err.Error())
	}
	if end < start {
		return errs.Validation("end_date must not be before start_date")
	}
	o.StartDate, o.EndDate = start, end
	return nil
}

// deactivateOverlapping flips active off on every offer for the dish
// whose window reaches past the new start date.
func deactivateOverlapping(ctx context.Context, tx *sql.Tx, dishID int, startDate string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE offers SET active = 0 WHERE dish_id = ? AND end_date > ?`,
		dishID, startDate)
	if err != nil {
		return errs.Persistence(err)
	}
	return nil
}

func createOffer(ctx context.Context, tx *sql.Tx, offer *models.Offer) (int, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO offers (dish_id, reduction, start_date, end_date, active)
		 VALUES (?, ?, ?, ?, 1)`,
		offer.DishID, offer.Reduction.String(), offer.StartDate, offer.EndDate)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Persistence(err)
	}
	return int(id), nil
}

// AddOffer creates an offer under the supersession rule: every offer for
// the same dish whose end_date is later than the new start_date is
// deactivated, and the new offer is inserted active. Both steps run in one
// transaction; a failure in either rolls back the whole operation so a
// reader never observes an inactive old offer without the new one, or two
// active offers with overlapping windows.
func (s *Store) AddOffer(ctx context.Context, offer *models.Offer) (int, error) {
	if err := ValidateOffer(offer); err != nil {
		return 0, err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	defer tx.Rollback()

	if err := deactivateOverlapping(ctx, tx, offer.DishID, offer.StartDate); err != nil {
		return 0, err
	}
	id, err := createOffer(ctx, tx, offer)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errs.Persistence(err)
	}
	return id, nil
}

// ActiveOffers returns every active offer whose window covers date
// (inclusive on both ends).
func (s *Store) ActiveOffers(ctx context.Context, date string) ([]models.Offer, error) {
	query := `
		SELECT offer_id, dish_id, reduction, start_date, end_date, active
		FROM offers
		WHERE active = 1 AND ? BETWEEN start_date AND end_date
		ORDER BY dish_id, start_date
	`
	return s.queryOffers(ctx, query, date)
}

// ListOffersForDish returns the full offer history of one dish, newest
// window first.
func (s *Store) ListOffersForDish(ctx context.Context, dishID int) ([]models.Offer, error) {
	query := `
		SELECT offer_id, dish_id, reduction, start_date, end_date, active
		FROM offers
		WHERE dish_id = ?
		ORDER BY start_date DESC, offer_id DESC
	`
	return s.queryOffers(ctx, query, dishID)
}

func (s *Store) queryOffers(ctx context.Context, query string, args ...any) ([]models.Offer, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		var reduction string
		if err := rows.Scan(&o.ID, &o.DishID, &reduction, &o.StartDate, &o.EndDate, &o.Active); err != nil {
			return nil, errs.Persistence(err)
		}
		if o.Reduction, err = decimal.NewFromString(reduction); err != nil {
			return nil, errs.Persistence(err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err)
	}
	return offers, nil
}
