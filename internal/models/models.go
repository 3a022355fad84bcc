package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// User roles. Levels 1 and 2 both carry admin capability.
const (
	RoleSuperAdmin = 1
	RoleAdmin      = 2
	RoleMember     = 3
)

// Money is a fixed-point currency amount. It marshals as a quoted string
// with exactly two decimals ("3.50"), matching the wire format of prices.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d}, nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.Decimal = d
	return nil
}

type Dish struct {
	ID          int    `json:"dish_id"`
	Name        string `json:"dish_name"`
	Price       Money  `json:"dish_price"`
	OfferPrice  *Money `json:"offer_price"`
	Description string `json:"description"`
	Photo       string `json:"dish_photo"`
	FileSize    int64  `json:"-"`
	MediaType   string `json:"-"`
	CategoryID  int    `json:"category_id"`
	// CategoryName is populated by menu queries for grouping only.
	CategoryName string `json:"-"`
}

type Category struct {
	ID   int    `json:"category_id"`
	Name string `json:"category_name"`
}

// CategoryMenu is one section of the grouped catalog listing.
type CategoryMenu struct {
	CategoryName string `json:"category_name"`
	Dishes       []Dish `json:"dishes"`
}

// Offer is a time-bounded price reduction for one dish. Offers are never
// updated in place; a newer offer supersedes by flipping Active off.
type Offer struct {
	ID        int             `json:"offer_id"`
	DishID    int             `json:"dish_id"`
	Reduction decimal.Decimal `json:"reduction"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Active    bool            `json:"active"`
}

type User struct {
	ID       int    `json:"user_id"`
	Email    string `json:"email,omitempty"`
	Password string `json:"-"`
	Role     int    `json:"user_level_id"`
}

// IsAdmin reports whether the user's role carries admin capability.
func (u User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleAdmin
}

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// Today returns the current date in the server's calendar.
func Today() string {
	return time.Now().Format(DateLayout)
}
