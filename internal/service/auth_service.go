package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marceloamor/reading-list-manager/internal/cache"
	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
	"github.com/marceloamor/reading-list-manager/internal/session"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so login failures are indistinguishable to the caller.
	ErrInvalidCredentials = apperrors.New(apperrors.KindAuthentication, "invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = apperrors.New(apperrors.KindConflict, "username is already taken")
)

// AuthService handles registration, login and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, password, confirmation string) (*model.Account, string, error)
	Login(ctx context.Context, username, password string) (*model.Account, string, error)
	Logout(ctx context.Context, token string) error
	CurrentSession(ctx context.Context, token string) (*session.Session, bool)
}

type authService struct {
	accounts   repository.AccountRepository
	sessions   session.Store
	cache      *cache.Client
	bcryptCost int
	sessionTTL time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts repository.AccountRepository, sessions session.Store, cacheClient *cache.Client, bcryptCost int, sessionTTL time.Duration) AuthService {
	return &authService{
		accounts:   accounts,
		sessions:   sessions,
		cache:      cacheClient,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
	}
}

// Register validates credentials, persists a new account with a hashed
// password and establishes a session. The returned token is the opaque
// session token to hand to the client.
func (s *authService) Register(ctx context.Context, username, password, confirmation string) (*model.Account, string, error) {
	if violations := validateCredentials(username, password, confirmation); len(violations) > 0 {
		return nil, "", apperrors.NewValidation(violations...)
	}

	existing, err := s.accounts.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, "", ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.NewStorage(fmt.Errorf("check username: %w", err))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewStorage(fmt.Errorf("hash password: %w", err))
	}

	account := &model.Account{
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// The unique index backs up the lookup above under concurrent
		// registration of the same name.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", apperrors.NewStorage(fmt.Errorf("create account: %w", err))
	}

	_ = s.cache.Delete(ctx, communityStatsCacheKey)

	token, err := s.sessions.Create(ctx, session.Session{AccountID: account.ID, Username: account.Username}, s.sessionTTL)
	if err != nil {
		return nil, "", apperrors.NewStorage(fmt.Errorf("create session: %w", err))
	}
	return account, token, nil
}

// Login verifies credentials and establishes a session. Both failure causes
// yield the same ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (*model.Account, string, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		// Only an unknown username maps to the generic credentials error;
		// a failing store is a storage problem, not a bad login.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", apperrors.NewStorage(fmt.Errorf("find account: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, session.Session{AccountID: account.ID, Username: account.Username}, s.sessionTTL)
	if err != nil {
		return nil, "", apperrors.NewStorage(fmt.Errorf("create session: %w", err))
	}
	return account, token, nil
}

// Logout invalidates the session. It always succeeds from the caller's
// perspective; invalidating an unknown or expired token is a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_ = s.sessions.Delete(ctx, token)
	return nil
}

// CurrentSession reports whether the token maps to a live session. It never
// errors on an absent session.
func (s *authService) CurrentSession(ctx context.Context, token string) (*session.Session, bool) {
	if token == "" {
		return nil, false
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil || sess == nil {
		return nil, false
	}
	return sess, true
}
