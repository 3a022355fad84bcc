package store

import (
	"context"
	"testing"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

func TestGetMenuJoinsCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDish(t, s, "Mokkapala")

	dishes, err := s.GetMenu(ctx)
	if err != nil {
		t.Fatalf("GetMenu: %v", err)
	}
	if len(dishes) != 1 {
		t.Fatalf("got %d dishes, want 1", len(dishes))
	}
	d := dishes[0]
	if d.Name != "Mokkapala" || d.Price.StringFixed(2) != "3.50" {
		t.Errorf("dish = %+v, want Mokkapala at 3.50", d)
	}
	if d.CategoryName == "" {
		t.Error("category name should be joined in")
	}
}

func TestGetDishByIDMissing(t *testing.T) {
	s := newTestStore(t)
	dish, err := s.GetDishByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetDishByID: %v", err)
	}
	if dish != nil {
		t.Errorf("got %+v, want nil for a missing dish", dish)
	}
}

func TestUpdateDish(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seedDish(t, s, "Kahvi")

	price, _ := models.MoneyFromString("2.80")
	name := "Espresso"
	affected, err := s.UpdateDish(ctx, id, DishUpdate{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("UpdateDish: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	dish, err := s.GetDishByID(ctx, id)
	if err != nil {
		t.Fatalf("GetDishByID: %v", err)
	}
	if dish.Name != "Espresso" || dish.Price.StringFixed(2) != "2.80" {
		t.Errorf("dish = %+v, want Espresso at 2.80", dish)
	}
}

func TestUpdateDishNoFields(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.UpdateDish(context.Background(), 1, DishUpdate{}); errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("got %v, want a validation error", err)
	}
}

func TestUpdateDishMissing(t *testing.T) {
	s := newTestStore(t)
	name := "Tee"
	affected, err := s.UpdateDish(context.Background(), 999, DishUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateDish: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for a missing dish", affected)
	}
}

func TestDeleteDishCascadesOffers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seedDish(t, s, "Pulla")

	offer := &models.Offer{DishID: id, Reduction: dec(t, "0.20"), StartDate: "2024-01-01", EndDate: "2024-01-31"}
	if _, err := s.AddOffer(ctx, offer); err != nil {
		t.Fatalf("AddOffer: %v", err)
	}

	affected, err := s.DeleteDish(ctx, id)
	if err != nil {
		t.Fatalf("DeleteDish: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected = %d, want 1", affected)
	}

	offers, err := s.ListOffersForDish(ctx, id)
	if err != nil {
		t.Fatalf("ListOffersForDish: %v", err)
	}
	if len(offers) != 0 {
		t.Errorf("got %d offers after delete, want 0", len(offers))
	}
}

func TestDeleteDishMissing(t *testing.T) {
	s := newTestStore(t)
	affected, err := s.DeleteDish(context.Background(), 999)
	if err != nil {
		t.Fatalf("DeleteDish: %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0", affected)
	}
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "member@example.com", "hash", models.RoleMember)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	byEmail, err := s.GetUserByEmail(ctx, "member@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != id || byEmail.Role != models.RoleMember {
		t.Fatalf("user = %+v, want id %d role %d", byEmail, id, models.RoleMember)
	}

	byID, err := s.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID == nil || byID.Email != "member@example.com" {
		t.Fatalf("user = %+v, want member@example.com", byID)
	}

	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail missing: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v, want nil for an unknown email", missing)
	}
}
