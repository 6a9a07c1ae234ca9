package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/idolcode/internal/client/client"
	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// MinPasswordLength applies to registration only; existing accounts may
// have shorter passwords.
const MinPasswordLength = 4

// AuthService validates credentials, calls the backend and, on success,
// signs the user into the session store.
type AuthService struct {
	client  client.Client
	session *SessionStore
	logger  logging.Logger
}

func NewAuthService(c client.Client, session *SessionStore, logger logging.Logger) *AuthService {
	return &AuthService{client: c, session: session, logger: logger}
}

// ValidateCredentials checks form input before any request is made. The
// returned error wraps common.ErrValidation with the message to show.
func ValidateCredentials(handle string, password []byte, register bool) error {
	if strings.TrimSpace(handle) == "" {
		return common.Validationf("Please enter your Codeforces handle")
	}
	if len(password) == 0 {
		return common.Validationf("Please enter a password")
	}
	if register && len([]rune(string(password))) < MinPasswordLength {
		return common.Validationf("Password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Login signs in an existing account.
func (a *AuthService) Login(ctx context.Context, handle string, password []byte) (*models.User, error) {
	return a.authenticate(ctx, handle, password, false)
}

// Register creates an account and signs it in.
func (a *AuthService) Register(ctx context.Context, handle string, password []byte) (*models.User, error) {
	return a.authenticate(ctx, handle, password, true)
}

func (a *AuthService) authenticate(ctx context.Context, handle string, password []byte, register bool) (*models.User, error) {
	if err := ValidateCredentials(handle, password, register); err != nil {
		return nil, err
	}
	handle = strings.TrimSpace(handle)

	call, action := a.client.Login, "login"
	if register {
		call, action = a.client.Register, "register"
	}

	res, err := call(ctx, handle, string(password))
	if err != nil {
		a.logger.Debug(ctx, "auth failed", "action", action, "handle", handle, "error", err)
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if err := a.session.Login(ctx, res.Handle, res.Profile); err != nil {
		return nil, err
	}
	return a.session.User(), nil
}
