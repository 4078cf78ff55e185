package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmarquez/taskflow-be/internal/auth"
	"github.com/dmarquez/taskflow-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, username, password string, isAdmin bool) (models.User, error)
	Authenticate(username, password string, claimAdmin bool) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	ListUsers() ([]models.UserSummary, error)
	DeleteUser(id string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByUsername retrieves a single user by username, including the
// password hash. Callers that serialize the user rely on the json:"-" tag
// to keep the hash out of responses.
func (s *UserService) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, name, username, password_hash, is_admin, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Register creates a new user, hashing their password. The existence check
// and the insert are separate statements; the UNIQUE constraint on username
// catches the race between concurrent registrations.
func (s *UserService) Register(name, username, password string, isAdmin bool) (models.User, error) {
	_, err := s.GetUserByUsername(username)
	if err == nil {
		return models.User{}, ErrUsernameTaken
	}
	if err != ErrUserNotFound {
		return models.User{}, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Username:     username,
		PasswordHash: hashedPassword,
		IsAdmin:      isAdmin,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, username, password_hash, is_admin) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Name, user.Username, user.PasswordHash, user.IsAdmin)
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials and their claimed admin flag.
// A regular user must claim isAdmin=false and an admin must claim true;
// anything else is ErrRoleMismatch even with the correct password.
func (s *UserService) Authenticate(username, password string, claimAdmin bool) (models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return models.User{}, err
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return models.User{}, ErrBadCredentials
	}

	if claimAdmin != user.IsAdmin {
		return models.User{}, ErrRoleMismatch
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// ListUsers returns the public view of every user: username and admin flag
// only.
func (s *UserService) ListUsers() ([]models.UserSummary, error) {
	rows, err := s.db.Query("SELECT username, is_admin FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.Username, &u.IsAdmin); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes a user from the database. Delete-if-present: a missing
// id is not an error, and the user's tasks are neither removed nor
// reassigned.
func (s *UserService) DeleteUser(id string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}
