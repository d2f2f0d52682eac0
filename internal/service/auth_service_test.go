package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/marceloamor/reading-list-manager/internal/errors"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
	"github.com/marceloamor/reading-list-manager/internal/session"
)

const testSessionTTL = time.Hour

func newAuthService(repo *MockAccountRepository, sessions session.Store) AuthService {
	return NewAuthService(repo, sessions, nil, bcrypt.MinCost, testSessionTTL)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		confirmation string
		setupMock    func(*MockAccountRepository)
		expectedKind apperrors.Kind
	}{
		{
			name:         "successful registration",
			username:     "bookworm_42",
			password:     "Sturdy-Pass1",
			confirmation: "Sturdy-Pass1",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "bookworm_42").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Account).ID = 7
				}).Return(nil)
			},
		},
		{
			name:         "username already exists",
			username:     "taken",
			password:     "Sturdy-Pass1",
			confirmation: "Sturdy-Pass1",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.Account{ID: 1, Username: "taken"}, nil)
			},
			expectedKind: apperrors.KindConflict,
		},
		{
			name:         "duplicate caught by unique index",
			username:     "racer",
			password:     "Sturdy-Pass1",
			confirmation: "Sturdy-Pass1",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "racer").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(repository.ErrDuplicateKey)
			},
			expectedKind: apperrors.KindConflict,
		},
		{
			name:         "invalid input never reaches the repository",
			username:     "x!",
			password:     "weak",
			confirmation: "other",
			setupMock:    func(m *MockAccountRepository) {},
			expectedKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			tt.setupMock(mockRepo)

			sessions := session.NewMemoryStore()
			svc := newAuthService(mockRepo, sessions)
			account, token, err := svc.Register(context.Background(), tt.username, tt.password, tt.confirmation)

			if tt.expectedKind != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, account)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, account)
				assert.Equal(t, tt.username, account.Username)
				assert.NotEmpty(t, account.PasswordHash)
				assert.NotEqual(t, tt.password, account.PasswordHash)
				assert.NotEmpty(t, token)

				sess, ok := svc.CurrentSession(context.Background(), token)
				assert.True(t, ok)
				assert.Equal(t, account.ID, sess.AccountID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_ReportsEveryViolatedRule(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	svc := newAuthService(mockRepo, session.NewMemoryStore())

	_, _, err := svc.Register(context.Background(), "a!", "short", "different")

	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "username must be between 3 and 30 characters")
	assert.Contains(t, appErr.Details, "username may only contain letters, digits, underscores and hyphens")
	assert.Contains(t, appErr.Details, "password must be at least 8 characters")
	assert.Contains(t, appErr.Details, "password must contain an uppercase letter")
	assert.Contains(t, appErr.Details, "password must contain a digit")
	assert.Contains(t, appErr.Details, "password must contain a symbol")
	assert.Contains(t, appErr.Details, "password confirmation does not match")

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Correct-Horse1!"), bcrypt.MinCost)
	stored := &model.Account{ID: 3, Username: "reader", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockAccountRepository)
		wantErr   bool
	}{
		{
			name:     "successful login",
			username: "reader",
			password: "Correct-Horse1!",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "reader").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			username: "reader",
			password: "Wrong-Horse1!",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "reader").Return(stored, nil)
			},
			wantErr: true,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "Correct-Horse1!",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			tt.setupMock(mockRepo)

			svc := newAuthService(mockRepo, session.NewMemoryStore())
			account, token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				// Both failure causes must be indistinguishable.
				assert.Equal(t, ErrInvalidCredentials, err)
				assert.Nil(t, account)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored.ID, account.ID)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_PasswordLengthCountsCharacters(t *testing.T) {
	svc := newAuthService(new(MockAccountRepository), session.NewMemoryStore())

	// Nine bytes but only six characters; all four character classes present.
	_, _, err := svc.Register(context.Background(), "reader", "Aä1!ßö", "Aä1!ßö")

	var appErr *apperrors.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "password must be at least 8 characters")
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("FindByUsername", mock.Anything, "reader").Return(nil, errors.New("driver: bad connection"))

	svc := newAuthService(mockRepo, session.NewMemoryStore())
	account, token, err := svc.Login(context.Background(), "reader", "Correct-Horse1!")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))
	assert.NotEqual(t, ErrInvalidCredentials, err)
	assert.Nil(t, account)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Correct-Horse1!"), bcrypt.MinCost)
	mockRepo.On("FindByUsername", mock.Anything, "reader").
		Return(&model.Account{ID: 3, Username: "reader", PasswordHash: string(hashed)}, nil)

	svc := newAuthService(mockRepo, session.NewMemoryStore())
	_, token, err := svc.Login(context.Background(), "reader", "Correct-Horse1!")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), token))
	_, ok := svc.CurrentSession(context.Background(), token)
	assert.False(t, ok)

	// Logging out again, or with no token at all, still succeeds.
	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthService_CurrentSession_AbsentToken(t *testing.T) {
	svc := newAuthService(new(MockAccountRepository), session.NewMemoryStore())

	sess, ok := svc.CurrentSession(context.Background(), "")
	assert.False(t, ok)
	assert.Nil(t, sess)

	sess, ok = svc.CurrentSession(context.Background(), "no-such-token")
	assert.False(t, ok)
	assert.Nil(t, sess)
}
