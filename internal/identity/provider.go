package identity

import (
	"context"
	"errors"

	"github.com/chorok-lab/carbon-exchange/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnavailable        = errors.New("identity provider unavailable")
)

// Provider authenticates principals. Role travels with sign-up only; the
// marketplace keeps it on the Profile row, immutable after creation.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string, role model.Role) (uid string, err error)
	SignIn(ctx context.Context, email, password string) (token string, err error)
	// Verify resolves a bearer token to the principal's uid.
	Verify(ctx context.Context, token string) (uid string, err error)
	SignOut(ctx context.Context, uid string) error
}
