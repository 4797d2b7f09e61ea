package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"

	"github.com/google/uuid"
)

// allowed upload types and the extension used in the object key
var documentContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

type documentUsecase struct {
	employerRepo domain.EmployerRepository
	presigner    domain.ObjectPresigner
	secLog       *security.SecurityLogger
}

// NewDocumentUsecase creates the verification document usecase
func NewDocumentUsecase(employerRepo domain.EmployerRepository, presigner domain.ObjectPresigner, secLog *security.SecurityLogger) domain.DocumentUsecase {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &documentUsecase{employerRepo: employerRepo, presigner: presigner, secLog: secLog}
}

func documentPrefix(employerID string) string {
	return "verification-documents/" + employerID + "/"
}

// RequestUploadSlot does not touch the employer record; the key is saved by ConfirmUpload.
func (uc *documentUsecase) RequestUploadSlot(ctx context.Context, employerID, contentType string) (*domain.UploadSlot, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := documentContentTypes[contentType]
	if !ok {
		return nil, apperror.BadRequest("contentType must be one of: application/pdf, image/jpeg, image/png")
	}

	key := documentPrefix(employerID) + uuid.NewString() + ext
	url, err := uc.presigner.PresignPut(ctx, key, contentType, domain.DocumentUploadTTL)
	if err != nil {
		return nil, apperror.ExternalService("Could not create upload URL", err)
	}

	return &domain.UploadSlot{
		UploadURL: url,
		Key:       key,
		ExpiresIn: int(domain.DocumentUploadTTL.Seconds()),
	}, nil
}

// ConfirmUpload replaces any previous document key. The old object is left in the bucket.
func (uc *documentUsecase) ConfirmUpload(ctx context.Context, employerID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.BadRequest("key is required")
	}
	if !strings.HasPrefix(key, documentPrefix(employerID)) || strings.Contains(key, "..") {
		uc.secLog.LogOwnershipDenied(ctx, employerID, "document", key)
		return apperror.Forbidden("Document key does not belong to this employer")
	}

	if err := uc.employerRepo.SetVerificationDocument(ctx, employerID, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Employer not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *documentUsecase) GetViewURL(ctx context.Context, employerID string) (string, error) {
	return uc.signedGet(ctx, employerID, "inline")
}

func (uc *documentUsecase) GetDownloadURL(ctx context.Context, employerID string) (string, error) {
	return uc.signedGet(ctx, employerID, "attachment")
}

func (uc *documentUsecase) signedGet(ctx context.Context, employerID, disposition string) (string, error) {
	employer, err := uc.employerRepo.GetEmployer(ctx, employerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Employer not found")
		}
		return "", apperror.Internal(err)
	}
	if employer.VerificationDocument == "" {
		return "", apperror.NotFound("No verification document uploaded")
	}

	if disposition == "attachment" {
		name := employer.VerificationDocument[strings.LastIndex(employer.VerificationDocument, "/")+1:]
		disposition = fmt.Sprintf("attachment; filename=%q", name)
	}

	url, err := uc.presigner.PresignGet(ctx, employer.VerificationDocument, domain.DocumentDownloadTTL, disposition)
	if err != nil {
		return "", apperror.ExternalService("Could not create document URL", err)
	}
	return url, nil
}
