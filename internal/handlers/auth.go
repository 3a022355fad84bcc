package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/emintt/coffee-shop-backend-23/internal/auth"
	"github.com/emintt/coffee-shop-backend-23/internal/errs"
	"github.com/emintt/coffee-shop-backend-23/internal/models"
	"github.com/emintt/coffee-shop-backend-23/internal/store"
)

type AuthHandler struct {
	Store  *store.Store
	Tokens *auth.TokenManager
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Login authenticates a member by member number and password.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberNumber string `json:"membernumber"`
		Password     string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	memberNumber, err := strconv.Atoi(strings.TrimSpace(req.MemberNumber))
	if err != nil || req.Password == "" {
		writeError(w, errs.Validation("membernumber and password are required"))
		return
	}

	user, err := h.Store.GetUserByID(r.Context(), memberNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	h.finishLogin(w, user, req.Password, false)
}

// LoginAdmin authenticates by email and password and requires an admin
// role.
// POST /api/auth/login-admin
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") || req.Password == "" {
		writeError(w, errs.Validation("email and password are required"))
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	h.finishLogin(w, user, req.Password, true)
}

// finishLogin compares the password and issues a token. Unknown users and
// wrong passwords produce the same message so the response does not leak
// which part was wrong.
func (h *AuthHandler) finishLogin(w http.ResponseWriter, user *models.User, password string, adminOnly bool) {
	if user == nil {
		writeError(w, errs.Unauthorized("username/password invalid"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		writeError(w, errs.Unauthorized("username/password invalid"))
		return
	}
	if adminOnly && !user.IsAdmin() {
		writeError(w, errs.Forbidden("you are not an admin"))
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeError(w, errs.Persistence(err))
		return
	}

	// The hash must never leave the store boundary.
	user.Password = ""
	writeJSON(w, http.StatusOK, loginResponse{Message: "logged in", Token: token, User: user})
}

// Register creates a member account (role 3).
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleMember, "user added")
}

// RegisterAdmin creates an admin account (role 2).
// POST /api/auth/register-admin
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleAdmin, "admin added")
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role int, message string) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") {
		writeError(w, errs.Validation("a valid email is required"))
		return
	}
	if len(req.Password) < 4 {
		writeError(w, errs.Validation("password must be at least 4 characters"))
		return
	}

	if existing, err := h.Store.GetUserByEmail(r.Context(), email); err != nil {
		writeError(w, err)
		return
	} else if existing != nil {
		writeError(w, errs.Validation("email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, errs.Persistence(err))
		return
	}

	id, err := h.Store.CreateUser(r.Context(), email, string(hashed), role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": message, "user_id": id})
}
