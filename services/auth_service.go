package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/models"
	"github.com/yashrajoria/storefront/repository"
)

// AuthService is the toy authentication gate. Exactly one account exists at a
// time; registering again overwrites it. The stored password is a bcrypt
// hash, the session lives only in memory.
type AuthService struct {
	mu      sync.Mutex
	session models.Session
	repo    *repository.CredentialRepository
	logger  *zap.Logger
}

func NewAuthService(repo *repository.CredentialRepository, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// SignUp registers the account, silently replacing any previous one. The
// session is untouched: a fresh sign-up still has to log in.
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return apperrors.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, err)
	}

	cred := models.Credential{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Save(ctx, cred); err != nil {
		s.logger.Error("Failed to store credential", zap.Error(err))
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	s.logger.Info("Account registered", zap.String("username", username))
	return nil
}

// Login succeeds iff the pair matches the stored credential. On success the
// in-memory session becomes authenticated; on failure it is left exactly as
// it was, so a failed attempt never downgrades an existing login.
func (s *AuthService) Login(ctx context.Context, username, password string) bool {
	if username == "" || password == "" {
		return false
	}

	cred, err := s.repo.Find(ctx)
	if err != nil {
		if !errors.Is(err, database.ErrKeyNotFound) {
			s.logger.Warn("Failed to read credential", zap.Error(err))
		}
		return false
	}

	if username != cred.Username {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return false
	}

	s.mu.Lock()
	s.session = models.Session{
		ID:            uuid.New(),
		Username:      username,
		Authenticated: true,
	}
	s.mu.Unlock()

	s.logger.Info("Login successful", zap.String("username", username))
	return true
}

// Logout clears the in-memory session only; the stored credential remains.
func (s *AuthService) Logout() {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()
}

// IsRegistered reports whether an account exists. Storage trouble reads as
// unregistered, which routes the visitor to sign-up rather than crashing.
func (s *AuthService) IsRegistered(ctx context.Context) bool {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		s.logger.Warn("Failed to check registration", zap.Error(err))
		return false
	}
	return exists
}

// Session returns a copy of the current in-memory session.
func (s *AuthService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Resolve applies the gate policy: unregistered visitors go to sign-up,
// registered but logged-out visitors go to login, only an authenticated
// session may view the catalog.
func (s *AuthService) Resolve(ctx context.Context) models.Route {
	if !s.IsRegistered(ctx) {
		return models.RouteSignUp
	}
	if !s.Session().Authenticated {
		return models.RouteLogin
	}
	return models.RouteCatalog
}
