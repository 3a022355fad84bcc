package store

import (
	"context"
	"database/sql"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

// GetUserByID looks up a user by member number. The password hash stays
// inside the store boundary; callers compare and discard it.
func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT user_id, COALESCE(email, ''), password, user_level_id FROM users WHERE user_id = ?`
	row := s.DB.QueryRowContext(ctx, query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.Persistence(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT user_id, COALESCE(email, ''), password, user_level_id FROM users WHERE email = ?`
	row := s.DB.QueryRowContext(ctx, query, email)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Password, &user.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errs.Persistence(err)
	}
	return &user, nil
}

// CreateUser inserts a user with the given role and returns the generated
// member number.
func (s *Store) CreateUser(ctx context.Context, email, hashedPassword string, role int) (int, error) {
	query := `INSERT INTO users (email, password, user_level_id) VALUES (?, ?, ?)`
	res, err := s.DB.ExecContext(ctx, query, email, hashedPassword, role)
	if err != nil {
		return 0, errs.Persistence(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errs.Persistence(err)
	}
	return int(id), nil
}
