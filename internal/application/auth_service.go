package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/office-agenda/internal/domain"
)

// AuthService resolves the identity a session acts as.
type AuthService struct {
	store  *Store
	logger *slog.Logger
}

// NewAuthService constructs an auth service.
func NewAuthService(store *Store, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, logger: defaultLogger(logger)}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Identities lists the selectable login identities.
func (s *AuthService) Identities() []domain.Identity {
	return s.store.Snapshot().Identities
}

// Lookup finds an identity by ID, or by username ignoring case.
func (s *AuthService) Lookup(ref string) (domain.Identity, error) {
	ref = strings.TrimSpace(ref)
	snapshot := s.store.Snapshot()
	if identity, ok := snapshot.FindIdentity(ref); ok {
		return identity, nil
	}
	for _, identity := range snapshot.Identities {
		if ref != "" && strings.EqualFold(identity.Username, ref) {
			return identity, nil
		}
	}
	return domain.Identity{}, fmt.Errorf("identity %q: %w", ref, ErrNotFound)
}

// Login selects an identity. Only admins with a stored password are asked to
// prove it; everyone else logs in by selection alone.
func (s *AuthService) Login(ctx context.Context, ref, password string) (identity domain.Identity, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Login", "identity", ref)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "login rejected", "error_kind", ErrorKind(err))
			return
		}
		logger.With("identity_id", identity.ID, "role", identity.Role).InfoContext(ctx, "login accepted")
	}()

	identity, err = s.Lookup(ref)
	if err != nil {
		return
	}
	if identity.IsAdmin() {
		if verr := checkAdminPassword(identity.Password, password); verr != nil {
			identity = domain.Identity{}
			if errors.Is(verr, ErrInvalidCredentials) {
				err = ErrInvalidCredentials
			} else {
				err = fmt.Errorf("%w: %v", ErrInvalidCredentials, verr)
			}
			return
		}
	}
	return
}
