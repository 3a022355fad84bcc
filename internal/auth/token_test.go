package auth

import (
	"testing"
	"time"

	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	user := &models.User{ID: 7, Email: "admin@example.com", Role: models.RoleAdmin}

	token, err := tm.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "admin@example.com" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v, want user 7 admin@example.com role %d", claims, models.RoleAdmin)
	}
	if !claims.IsAdmin() {
		t.Error("role 2 should carry admin capability")
	}
}

func TestVerifyExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)
	token, err := tm.Issue(&models.User{ID: 1, Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tm.Verify(token); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("got %v, want a forbidden error for an expired token", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager(testSecret, time.Hour)
	verifier := NewTokenManager([]byte("another-secret-another-secret-00"), time.Hour)

	token, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleMember})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("token signed with a different secret should not verify")
	}
}

func TestVerifyGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	if _, err := tm.Verify("not.a.token"); errs.KindOf(err) != errs.KindForbidden {
		t.Fatalf("got %v, want a forbidden error", err)
	}
}

func TestSuperAdminIsAdmin(t *testing.T) {
	c := &Claims{Role: models.RoleSuperAdmin}
	if !c.IsAdmin() {
		t.Error("role 1 should carry admin capability")
	}
	c.Role = models.RoleMember
	if c.IsAdmin() {
		t.Error("role 3 must not carry admin capability")
	}
}
