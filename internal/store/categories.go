package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT category_id, category_name FROM categories ORDER BY category_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, errs.Persistence(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err)
	}
	return categories, nil
}

func (s *Store) CategoryExists(ctx context.Context, id int) (bool, error) {
	var one int
	err := s.DB.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE category_id = ?`, id).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, errs.Persistence(err)
}
