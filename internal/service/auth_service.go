// Package service holds the use cases behind the API: accounts, boards and tasks.
// Services speak apperror; repositories never leak past this layer.
package service

import (
	"context"
	"errors"
	"strings"

	"flowboard/internal/apperror"
	"flowboard/internal/auth"
	"flowboard/internal/model"
	"flowboard/internal/repository"

	"github.com/google/uuid"
)

// AuthResult is what register, login and profile update hand back.
type AuthResult struct {
	Token string
	User  *model.User
}

// ProfileUpdate carries the optional fields of a profile change. Empty means not supplied.
type ProfileUpdate struct {
	Username string
	Email    string
	Password string
}

type AuthService struct {
	users  repository.UserStore
	issuer *auth.Issuer
}

func NewAuthService(users repository.UserStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, apperror.Validation("Missing fields")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal(err)
	}

	return s.issue(user)
}

// Login answers unknown email and wrong password identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("Missing fields")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Auth("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperror.Auth("Invalid credentials")
	}

	return s.issue(user)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*AuthResult, error) {
	var fields repository.UserUpdate
	if username := strings.TrimSpace(upd.Username); username != "" {
		fields.Username = &username
	}
	if email := NormalizeEmail(upd.Email); email != "" {
		fields.Email = &email
	}
	if upd.Password != "" {
		hash, err := hashPassword(upd.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}
	if fields.Username == nil && fields.Email == nil && fields.PasswordHash == nil {
		return nil, apperror.Validation("No fields to update")
	}

	user, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict("Username or email already in use")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.issuer.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperror.Validation("Password too long")
	}
	if err != nil {
		return "", apperror.Internal(err)
	}
	return hash, nil
}
