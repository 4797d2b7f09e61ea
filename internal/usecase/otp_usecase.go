package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
)

const (
	otpMin = 100000
	otpMax = 999999
)

type otpUsecase struct {
	store domain.OTPStore
}

// NewOTPUsecase creates the verification-code issuer backed by a TTL store
func NewOTPUsecase(store domain.OTPStore) domain.OTPUsecase {
	return &otpUsecase{store: store}
}

func otpKey(role domain.Role, accountID string) string {
	return fmt.Sprintf("otp:%s:%s", role, accountID)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// Issue stores a fresh code for the account, replacing any earlier one
func (uc *otpUsecase) Issue(ctx context.Context, role domain.Role, accountID string) (string, error) {
	code, err := generateOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	if err := uc.store.Save(ctx, otpKey(role, accountID), code, domain.OTPTTL); err != nil {
		return "", fmt.Errorf("save otp: %w", err)
	}
	return code, nil
}

// Verify consumes the code. An expired record is already gone from the store,
// so a miss and a mismatch look the same to the caller.
func (uc *otpUsecase) Verify(ctx context.Context, role domain.Role, accountID, code string) error {
	ok, err := uc.store.Consume(ctx, otpKey(role, accountID), code)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.InvalidOrExpiredOTP()
	}
	return nil
}

func (uc *otpUsecase) Discard(ctx context.Context, role domain.Role, accountID string) error {
	return uc.store.Delete(ctx, otpKey(role, accountID))
}
