package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	gotrue "github.com/supabase-community/gotrue-go"
)

// TokenVerifier answers whether a bearer token is valid. The token is
// otherwise opaque to this service; issuance lives with the auth provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// JWKSVerifier checks the token signature against the provider's published
// key set.
type JWKSVerifier struct {
	jwksURL string
}

func NewJWKSVerifier(jwksURL string) *JWKSVerifier {
	return &JWKSVerifier{jwksURL: jwksURL}
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(v.jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer jwks.EndBackground()

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, jwks.Keyfunc)
	if err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}
	if !parsed.Valid {
		return errors.New("invalid or expired token")
	}
	return nil
}

// GoTrueVerifier asks the auth server directly whether the token belongs to
// a user. Useful when the provider does not expose a JWKS endpoint.
type GoTrueVerifier struct {
	client gotrue.Client
}

func NewGoTrueVerifier(authURL, anonKey string) *GoTrueVerifier {
	client := gotrue.New("recyclewise", anonKey).WithCustomGoTrueURL(authURL)
	return &GoTrueVerifier{client: client}
}

func (v *GoTrueVerifier) Verify(ctx context.Context, token string) error {
	if _, err := v.client.WithToken(token).GetUser(); err != nil {
		return fmt.Errorf("token rejected by auth provider: %w", err)
	}
	return nil
}
