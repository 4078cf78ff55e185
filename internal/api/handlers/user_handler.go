package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog/log"

	"github.com/dmarquez/taskflow-be/internal/auth"
	"github.com/dmarquez/taskflow-be/internal/services"
)

// UserHandler handles HTTP requests for registration, login, and user
// management.
type UserHandler struct {
	users  services.UserServiceProvider
	tokens *auth.TokenService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, tokens *auth.TokenService) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate runs validation rules on the registration payload.
func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Password, validation.Required, validation.Length(1, 100)),
	)
}

// LoginPayload defines the structure for login requests. IsAdmin is the
// caller's claimed role; it must match the stored flag for login to
// succeed.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Validate runs validation rules on the login payload.
func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// Register handles new user registration. No token is issued here; login
// is a separate step.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.users.Register(payload.Name, payload.Username, payload.Password, payload.IsAdmin)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			http.Error(w, "Username Already Exists", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User Created Successfully"})
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(payload.Username, payload.Password, payload.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			http.Error(w, "User Not Found", http.StatusBadRequest)
		case errors.Is(err, services.ErrBadCredentials):
			http.Error(w, "Password Not Same", http.StatusBadRequest)
		case errors.Is(err, services.ErrRoleMismatch):
			http.Error(w, "User is not Admin", http.StatusBadRequest)
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to authenticate user")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	token, err := h.tokens.Issue(user.Username, user.IsAdmin)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to sign token")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jwtToken": token,
		"isAdmin":  user.IsAdmin,
	})
}

// List returns every user's username and admin flag. Requires
// authentication but no particular role.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// Delete removes a user by id. Admin-only: the caller's own record is
// resolved from the token claims and must carry the admin flag. The target
// is deleted if present; its tasks are left in place.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	caller, err := h.users.GetUserByUsername(claims.Username)
	if err != nil {
		log.Error().Err(err).Str("username", claims.Username).Msg("User from token not found in DB")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !caller.IsAdmin {
		http.Error(w, "Admin only remove user", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.users.DeleteUser(id); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Successfully Deleted"})
}
