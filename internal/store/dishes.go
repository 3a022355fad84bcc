package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

// GetMenu returns every dish joined with its category name, ordered so
// that consecutive rows share a category.
func (s *Store) GetMenu(ctx context.Context) ([]models.Dish, error) {
	query := `
		SELECT d.dish_id, d.dish_name, d.dish_price, COALESCE(d.description, ''), COALESCE(d.dish_photo, ''), d.category_id, c.category_name
		FROM dishes d
		JOIN categories c ON d.category_id = c.category_id
		ORDER BY d.category_id, d.dish_id
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, errs.Persistence(err)
	}
	defer rows.Close()

	var dishes []models.Dish
	for rows.Next() {
		var d models.Dish
		var price string
		if err := rows.Scan(&d.ID, &d.Name, &price, &d.Description, &d.Photo, &d.CategoryID, &d.CategoryName); err != nil {
			return nil, errs.Persistence(err)
		}
		if d.Price, err = models.MoneyFromString(price); err != nil {
			return nil, errs.Persistence(err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Persistence(err)
	}
	return dishes, nil
}

// GetDishByID returns (nil, nil) when the dish does not exist.
func (s *Store) GetDishByID(ctx context.Context, id int) (*models.Dish, error) {
	query := `
		SELECT dish_id, dish_name, dish_price, COALESCE(description, ''), COALESCE(dish_photo, ''), category_id
		FROM dishes WHERE dish_id = ?
	`
	row := s.DB.QueryRowContext(ctx, query, id)

	var d models.Dish
	var price string
	if err := row.Scan(&d.ID, &d.Name, &price, &d.Description, &d.Photo, &d.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Persistence(err)
	}
	var err error
	if d.Price, err = models.MoneyFromString(price); err != nil {
		return nil, errs.Persistence(err)
	}
	return &d, nil
}

func (s *Store) CreateDish(ctx context.Context, dish *models.Dish) (int, error) {
	query := `
		INSERT INTO dishes (dish_name, dish_price, description, category_id, dish_photo, filesize, media_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := s.DB.ExecContext(ctx, query,
		dish.Name, dish.Price.StringFixed(2), dish.Description, dish.CategoryID,
		dish.Photo, dish.FileSize, dish.MediaType)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Persistence(err)
	}
	return int(id), nil
}

// DishUpdate carries the optional fields of a partial dish update. Nil
// fields are left untouched.
type DishUpdate struct {
	Name        *string
	Price       *models.Money
	Description *string
	CategoryID  *int
	Photo       *string
	FileSize    *int64
	MediaType   *string
}

func (u DishUpdate) empty() bool {
	return u.Name == nil && u.Price == nil && u.Description == nil &&
		u.CategoryID == nil && u.Photo == nil
}

// UpdateDish applies a partial update and returns the number of affected
// rows (0 when the dish does not exist).
func (s *Store) UpdateDish(ctx context.Context, id int, update DishUpdate) (int64, error) {
	if update.empty() {
		return 0, errs.Validation("no fields to update")
	}

	var sets []string
	var args []any
	if update.Name != nil {
		sets = append(sets, "dish_name = ?")
		args = append(args, *update.Name)
	}
	if update.Price != nil {
		sets = append(sets, "dish_price = ?")
		args = append(args, update.Price.StringFixed(2))
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *update.CategoryID)
	}
	if update.Photo != nil {
		sets = append(sets, "dish_photo = ?")
		args = append(args, *update.Photo)
		if update.FileSize != nil {
			sets = append(sets, "filesize = ?")
			args = append(args, *update.FileSize)
		}
		if update.MediaType != nil {
			sets = append(sets, "media_type = ?")
			args = append(args, *update.MediaType)
		}
	}
	args = append(args, id)

	query := "UPDATE dishes SET " + strings.Join(sets, ", ") + " WHERE dish_id = ?"
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errs.Persistence(err)
	}
	return affected, nil
}

// DeleteDish returns the number of deleted rows; 0 means the dish was
// already absent.
func (s *Store) DeleteDish(ctx context.Context, id int) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM dishes WHERE dish_id = ?`, id)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errs.Persistence(err)
	}
	return affected, nil
}
