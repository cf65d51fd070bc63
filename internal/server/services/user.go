// Package services contains the application logic of the RecipeBook server.
// Services sit between the transport layer (GraphQL/HTTP) and the
// repositories, and own validation, authorization and transactions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/mkurent/recipebook/internal/common"
	"github.com/mkurent/recipebook/internal/server/auth"
	"github.com/mkurent/recipebook/internal/server/models"
	"github.com/mkurent/recipebook/internal/server/password"
	"github.com/mkurent/recipebook/internal/server/repositories/repomanager"
)

const minPasswordLength = 3

// RegisterUserInput carries the fields of a signup request.
type RegisterUserInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// TokenData is the result of a successful login.
type TokenData struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// UserService implements user registration and authentication.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	secretKey             string
	tokenValidityDuration time.Duration
}

// NewUserService creates a UserService.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, secretKey string, tokenValidityDuration time.Duration) *UserService {
	return &UserService{db: db, repomanager: rm, secretKey: secretKey, tokenValidityDuration: tokenValidityDuration}
}

// validEmail reports whether s is a plausible email address. mail.ParseAddress
// accepts local addresses like "a@b", so a dot in the domain is required too.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}

// Register validates the input and creates a new user with a hashed password.
// Validation problems are accumulated and returned together as a single
// invalid-input error. A duplicate email yields a conflict error.
func (s *UserService) Register(ctx context.Context, input *RegisterUserInput) (*models.User, error) {

	var details []string
	if strings.TrimSpace(input.Name) == "" {
		details = append(details, "Name is required!")
	}
	if !validEmail(input.Email) {
		details = append(details, "Email is not valid!")
	}
	if len(input.Password) < minPasswordLength {
		details = append(details, fmt.Sprintf("Password is too short (minimal %d characters)!", minPasswordLength))
	}
	if len(input.ConfirmPassword) < minPasswordLength {
		details = append(details, fmt.Sprintf("Password is too short (minimal %d characters)!", minPasswordLength))
	}
	if len(details) > 0 {
		return nil, common.NewInvalidInput(details)
	}

	repo := s.repomanager.Users(s.db)

	// uniqueness is checked before the confirmation match: a duplicate email
	// reports Conflict even when the passwords also disagree
	if _, err := repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, common.NewConflict("Email is already in use!")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	if input.Password != input.ConfirmPassword {
		return nil, common.NewUnauthorized("Passwords do not match!")
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		// the unique index catches registrations racing past the lookup above
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.NewConflict("Email is already in use!")
		}
		return nil, err
	}

	return created, nil
}

// Login checks the credentials and issues a signed token.
func (s *UserService) Login(ctx context.Context, email string, passwd string) (*TokenData, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFound("The user with this email does not exist!")
		}
		return nil, err
	}

	ok, err := password.Verify(passwd, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewUnauthorized("Invalid password.")
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.secretKey), s.tokenValidityDuration)
	if err != nil {
		return nil, err
	}

	return &TokenData{Token: token, UserID: user.ID}, nil
}
