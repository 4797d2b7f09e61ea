package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"

	"github.com/go-playground/validator/v10"
)

// AccountDeps are the collaborators of one role's account usecase.
type AccountDeps struct {
	Repo     domain.AccountRepository
	OTP      domain.OTPUsecase
	Hasher   domain.PasswordHasher
	Tokens   domain.TokenIssuer
	Mailer   domain.EmailSender
	Identity domain.IdentityVerifier
	Guard    domain.LoginGuard
	SecLog   *security.SecurityLogger
	Validate *validator.Validate
}

type accountUsecase struct {
	role domain.Role
	AccountDeps
}

// NewAccountUsecase builds registration and sign-in for a single role. Seekers
// and employers each get their own instance over their own repository.
func NewAccountUsecase(role domain.Role, deps AccountDeps) domain.AccountUsecase {
	if deps.SecLog == nil {
		deps.SecLog = security.NopSecurityLogger()
	}
	return &accountUsecase{role: role, AccountDeps: deps}
}

func (uc *accountUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validateInput(uc.Validate, input); err != nil {
		return nil, err
	}

	if err := uc.ensureAvailable(ctx, input.Email, input.Phone); err != nil {
		return nil, err
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	account := &domain.Account{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		IsVerified:   false,
		AuthProvider: domain.AuthProviderLocal,
	}
	extras := domain.AccountExtras{CompanyName: strings.TrimSpace(input.CompanyName)}
	if err := uc.Repo.Create(ctx, account, extras); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("An account with this email or phone already exists")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.sendCode(ctx, account); err != nil {
		uc.rollbackRegistration(ctx, account.ID)
		return nil, apperror.EmailDispatchFailed(err)
	}

	return account, nil
}

func (uc *accountUsecase) ensureAvailable(ctx context.Context, email, phone string) error {
	_, err := uc.Repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return apperror.Conflict("An account with this email already exists")
	case !errors.Is(err, domain.ErrNotFound):
		return apperror.Internal(err)
	}

	taken, err := uc.Repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return apperror.Conflict("An account with this phone number already exists")
	}
	return nil
}

func (uc *accountUsecase) sendCode(ctx context.Context, account *domain.Account) error {
	code, err := uc.OTP.Issue(ctx, uc.role, account.ID)
	if err != nil {
		return err
	}
	return uc.Mailer.SendOTP(account.Email, account.Name, code)
}

// rollbackRegistration removes an account whose code could not be delivered.
// It runs even if the request context was cancelled.
func (uc *accountUsecase) rollbackRegistration(ctx context.Context, accountID string) {
	ctx = context.WithoutCancel(ctx)
	if err := uc.OTP.Discard(ctx, uc.role, accountID); err != nil {
		logger.Log.Error("Failed to discard otp during registration rollback", "role", uc.role, "account_id", accountID, "error", err)
	}
	if err := uc.Repo.Delete(ctx, accountID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Log.Error("Failed to delete account during registration rollback", "role", uc.role, "account_id", accountID, "error", err)
	}
}

// ResendOTP replaces the outstanding code of an unverified account.
func (uc *accountUsecase) ResendOTP(ctx context.Context, email string) error {
	account, err := uc.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if account.IsVerified {
		return apperror.Conflict("Account is already verified")
	}

	if err := uc.sendCode(ctx, account); err != nil {
		if derr := uc.OTP.Discard(context.WithoutCancel(ctx), uc.role, account.ID); derr != nil {
			logger.Log.Error("Failed to discard otp after dispatch failure", "role", uc.role, "account_id", account.ID, "error", derr)
		}
		return apperror.EmailDispatchFailed(err)
	}
	return nil
}

func (uc *accountUsecase) VerifyRegistration(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	account, err := uc.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := uc.OTP.Verify(ctx, uc.role, account.ID, strings.TrimSpace(code)); err != nil {
		return nil, err
	}

	if err := uc.Repo.MarkVerified(ctx, account.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	account.IsVerified = true

	return uc.session(account)
}

func (uc *accountUsecase) Login(ctx context.Context, email, password, clientIP string) (*domain.AuthResult, error) {
	email = strings.TrimSpace(email)

	blocked, err := uc.Guard.IsBlocked(ctx, email, clientIP)
	if err != nil {
		logger.Log.Warn("Login guard unavailable", "error", err)
	}
	if blocked {
		uc.SecLog.LogLoginBlocked(ctx, string(uc.role), email, clientIP)
		return nil, apperror.TooManyRequests("Too many failed login attempts. Try again later")
	}

	account, err := uc.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, uc.failLogin(ctx, email, clientIP, "unknown_email")
		}
		return nil, apperror.Internal(err)
	}

	// Google accounts only hold a random placeholder hash.
	if account.AuthProvider != domain.AuthProviderLocal {
		return nil, uc.failLogin(ctx, email, clientIP, "oauth_account")
	}
	if err := uc.Hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, uc.failLogin(ctx, email, clientIP, "bad_password")
	}

	if !account.IsVerified {
		return nil, apperror.NotVerified()
	}

	if err := uc.Guard.Clear(ctx, email, clientIP); err != nil {
		logger.Log.Warn("Failed to clear login attempts", "error", err)
	}
	uc.SecLog.LogLoginSuccess(ctx, string(uc.role), account.ID, clientIP)

	return uc.session(account)
}

func (uc *accountUsecase) failLogin(ctx context.Context, email, clientIP, reason string) error {
	uc.SecLog.LogLoginFailed(ctx, string(uc.role), email, clientIP, reason)
	if _, err := uc.Guard.RecordFailure(ctx, email, clientIP); err != nil {
		logger.Log.Warn("Failed to record login failure", "error", err)
	}
	return apperror.InvalidCredentials()
}

// ContinueWithGoogle signs in an existing Google account or returns the
// verified profile so the client can collect the remaining fields.
func (uc *accountUsecase) ContinueWithGoogle(ctx context.Context, idToken string) (*domain.OAuthResult, error) {
	identity, err := uc.verifyIdentity(ctx, idToken)
	if err != nil {
		return nil, err
	}

	account, err := uc.Repo.GetByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.OAuthResult{NeedsProfileCompletion: true, Profile: identity}, nil
		}
		return nil, apperror.Internal(err)
	}

	if account.AuthProvider == domain.AuthProviderLocal {
		return nil, apperror.Conflict("This email is registered with a password. Use password login")
	}

	result, err := uc.session(account)
	if err != nil {
		return nil, err
	}
	return &domain.OAuthResult{Token: result.Token, Account: result.Account}, nil
}

// CompleteGoogleRegistration verifies the token again rather than trusting
// the profile returned by ContinueWithGoogle.
func (uc *accountUsecase) CompleteGoogleRegistration(ctx context.Context, input domain.GoogleCompletionInput) (*domain.AuthResult, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	if err := validateInput(uc.Validate, input); err != nil {
		return nil, err
	}
	if uc.role == domain.RoleEmployer && input.CompanyName == "" {
		return nil, apperror.Validation([]string{"Company name: is required"})
	}

	identity, err := uc.verifyIdentity(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	if err := uc.ensureAvailable(ctx, identity.Email, input.Phone); err != nil {
		return nil, err
	}

	placeholder, err := auth.RandomPassword()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hash, err := uc.Hasher.Hash(placeholder)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}

	account := &domain.Account{
		Name:           name,
		Email:          identity.Email,
		Phone:          input.Phone,
		PasswordHash:   hash,
		IsVerified:     true,
		AuthProvider:   domain.AuthProviderGoogle,
		GoogleID:       identity.Subject,
		ProfilePicture: identity.Picture,
	}
	if err := uc.Repo.Create(ctx, account, domain.AccountExtras{CompanyName: input.CompanyName}); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("An account with this email or phone already exists")
		}
		return nil, apperror.Internal(err)
	}

	return uc.session(account)
}

func (uc *accountUsecase) verifyIdentity(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperror.BadRequest("Google ID token is required")
	}

	identity, err := uc.Identity.Verify(ctx, idToken)
	if err != nil {
		return nil, apperror.New(http.StatusUnauthorized, apperror.KindUnauthorized, "Invalid Google token", err)
	}
	if identity.Email == "" || !identity.EmailVerified {
		return nil, apperror.Unauthorized("Google account email is not verified")
	}
	return identity, nil
}

func (uc *accountUsecase) getByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := uc.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Account not found")
		}
		return nil, apperror.Internal(err)
	}
	return account, nil
}

func (uc *accountUsecase) session(account *domain.Account) (*domain.AuthResult, error) {
	token, err := uc.Tokens.Issue(account.ID, string(uc.role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{Token: token, Account: account}, nil
}
