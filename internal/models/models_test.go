package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyMarshalsWithTwoDecimals(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{"3.5", `"3.50"`},
		{"3.50", `"3.50"`},
		{"4", `"4.00"`},
		{"1.05", `"1.05"`},
	} {
		m, err := MoneyFromString(tt.in)
		if err != nil {
			t.Fatalf("MoneyFromString(%q): %v", tt.in, err)
		}
		b, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s", tt.in, b, tt.want)
		}
	}
}

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"2.50"`), &m); err != nil {
		t.Fatalf("Unmarshal string: %v", err)
	}
	if m.StringFixed(2) != "2.50" {
		t.Errorf("got %s, want 2.50", m.StringFixed(2))
	}
	if err := json.Unmarshal([]byte(`2.5`), &m); err != nil {
		t.Fatalf("Unmarshal number: %v", err)
	}
	if m.StringFixed(2) != "2.50" {
		t.Errorf("got %s, want 2.50", m.StringFixed(2))
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-01-15"); err != nil {
		t.Errorf("ParseDate valid: %v", err)
	}
	for _, bad := range []string{"15.01.2024", "2024-13-01", "2024-01-32", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	for role, want := range map[int]bool{RoleSuperAdmin: true, RoleAdmin: true, RoleMember: false} {
		if got := (User{Role: role}).IsAdmin(); got != want {
			t.Errorf("IsAdmin(role %d) = %v, want %v", role, got, want)
		}
	}
}
