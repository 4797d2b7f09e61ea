package domain

import (
	"context"
	"time"
)

// OTPTTL is how long an issued verification code stays matchable.
const OTPTTL = 10 * time.Minute

type RegisterInput struct {
	Name        string `json:"name" validate:"required,valid_name,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Phone       string `json:"phone" validate:"required,valid_phone"`
	CompanyName string `json:"companyName" validate:"max=200"`
}

type GoogleCompletionInput struct {
	IDToken     string `json:"idToken" validate:"required"`
	Phone       string `json:"phone" validate:"required,valid_phone"`
	CompanyName string `json:"companyName" validate:"max=200"`
}

// AuthResult is returned by every flow that ends in a session.
type AuthResult struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}

// ExternalIdentity is what a trusted identity provider asserts about a user.
type ExternalIdentity struct {
	Subject       string `json:"googleId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// OAuthResult is either a session for an existing Google account or a
// profile preview for a user who still has to complete registration.
type OAuthResult struct {
	Token                  string            `json:"token,omitempty"`
	Account                *Account          `json:"account,omitempty"`
	NeedsProfileCompletion bool              `json:"needsProfileCompletion"`
	Profile                *ExternalIdentity `json:"profile,omitempty"`
}

// AccountUsecase covers registration and sign-in for one role.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*Account, error)
	ResendOTP(ctx context.Context, email string) error
	VerifyRegistration(ctx context.Context, email, code string) (*AuthResult, error)
	Login(ctx context.Context, email, password, clientIP string) (*AuthResult, error)
	ContinueWithGoogle(ctx context.Context, idToken string) (*OAuthResult, error)
	CompleteGoogleRegistration(ctx context.Context, input GoogleCompletionInput) (*AuthResult, error)
}

type OTPUsecase interface {
	Issue(ctx context.Context, role Role, accountID string) (string, error)
	Verify(ctx context.Context, role Role, accountID, code string) error
	Discard(ctx context.Context, role Role, accountID string) error
}

// OTPStore keeps codes with a storage-level expiry.
type OTPStore interface {
	Save(ctx context.Context, key, code string, ttl time.Duration) error
	// Consume deletes the record and reports true only when code matches.
	Consume(ctx context.Context, key, code string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

type EmailSender interface {
	SendOTP(to, name, code string) error
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

// LoginGuard throttles repeated failed logins.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailure(ctx context.Context, email, ip string) (bool, error)
	Clear(ctx context.Context, email, ip string) error
}
