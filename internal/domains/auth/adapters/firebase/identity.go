package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/Apurer/pizzeria-console/internal/domains/auth/ports"
)

// Client is the part of *auth.Client the provider uses.
type Client interface {
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// IdentityProvider checks and creates users through Firebase Authentication.
type IdentityProvider struct {
	client Client
}

// NewIdentityProvider wraps client.
func NewIdentityProvider(client Client) *IdentityProvider {
	return &IdentityProvider{client: client}
}

var _ ports.IdentityProvider = (*IdentityProvider)(nil)

// Exists reports whether uid is a live Firebase user.
func (p *IdentityProvider) Exists(ctx context.Context, uid string) (bool, error) {
	_, err := p.client.GetUser(ctx, uid)
	if auth.IsUserNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get user %s: %w", uid, err)
	}
	return true, nil
}

// CreateAnonymous creates a user without credentials.
func (p *IdentityProvider) CreateAnonymous(ctx context.Context) (string, error) {
	rec, err := p.client.CreateUser(ctx, &auth.UserToCreate{})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return rec.UID, nil
}
