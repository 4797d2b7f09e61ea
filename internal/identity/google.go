// Package identity verifies third-party ID tokens and maps their claims to
// domain identities.
package identity

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/domain"

	"google.golang.org/api/idtoken"
)

var ErrNoAudience = errors.New("identity: google client id not configured")

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleVerifier checks a Google ID token's signature, expiry and audience.
type GoogleVerifier struct {
	audience string
	validate validateFunc
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{audience: clientID, validate: idtoken.Validate}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.ExternalIdentity, error) {
	if v.audience == "" {
		return nil, ErrNoAudience
	}

	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("identity: invalid google token: %w", err)
	}

	email := stringClaim(payload.Claims, "email")
	if email == "" {
		return nil, errors.New("identity: token carries no email")
	}

	return &domain.ExternalIdentity{
		Subject:       payload.Subject,
		Email:         email,
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Name:          stringClaim(payload.Claims, "name"),
		Picture:       stringClaim(payload.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// Google sends email_verified as a bool, some older tokens as "true".
func boolClaim(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
