// Package handlers implements the HTTP handlers for the TaskDeck API.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/api/problem"
	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/models"
	"github.com/acolombo/taskdeck/pkg/store"
)

// AuthHandler handles authentication-related API endpoints.
type AuthHandler struct {
	accounts store.AccountStore
	codec    *auth.Codec
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts store.AccountStore, codec *auth.Codec) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		codec:    codec,
		validate: validator.New(),
	}
}

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=255"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the response body for successful register and login calls.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Account     AccountResponse `json:"account"`
}

// AccountResponse is a sanitized account representation for API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func accountToResponse(account *models.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
}

// Register handles POST /api/v1/auth/register.
// Creates an account and returns a credential for it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		problem.UnprocessableEntity(w, "Registration requires a valid email and a password of at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		problem.InternalServerError(w, "Failed to process credentials")
		return
	}

	account := &models.Account{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}
	if _, err := h.accounts.CreateAccount(r.Context(), account); err != nil {
		if errors.Is(err, models.ErrDuplicateAccount) {
			problem.Conflict(w, "An account with this email already exists")
			return
		}
		logger.ErrorCtx(r.Context(), "account creation failed", "error", err)
		problem.InternalServerError(w, "Failed to create account")
		return
	}

	h.writeTokenResponse(w, r, account, http.StatusCreated)
}

// Login handles POST /api/v1/auth/login.
// Authenticates email/password credentials and returns a fresh token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		problem.BadRequest(w, "Email and password are required")
		return
	}

	account, err := h.accounts.ValidateCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrAccountNotFound) {
			problem.Unauthenticated(w, "Invalid email or password")
			return
		}
		logger.ErrorCtx(r.Context(), "credential validation failed", "error", err)
		problem.InternalServerError(w, "Authentication failed")
		return
	}

	h.writeTokenResponse(w, r, account, http.StatusOK)
}

// Me handles GET /api/v1/me.
// Returns the authenticated caller's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if caller == nil {
		problem.Unauthenticated(w, "Authentication required")
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), caller.Identity)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			problem.NotFound(w, "Account not found")
			return
		}
		logger.ErrorCtx(r.Context(), "account lookup failed", "error", err)
		problem.InternalServerError(w, "Failed to load account")
		return
	}

	problem.WriteJSONOK(w, accountToResponse(account))
}

func (h *AuthHandler) writeTokenResponse(w http.ResponseWriter, r *http.Request, account *models.Account, status int) {
	token, err := h.codec.Issue(account.Identity(), account.Email, account.GetDisplayName(), 0)
	if err != nil {
		logger.ErrorCtx(r.Context(), "token issuance failed", "error", err)
		problem.InternalServerError(w, "Failed to issue token")
		return
	}

	ttl := h.codec.TokenDuration()
	problem.WriteJSON(w, status, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		ExpiresAt:   time.Now().Add(ttl),
		Account:     accountToResponse(account),
	})
}
