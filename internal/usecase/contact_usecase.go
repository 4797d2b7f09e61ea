package usecase

import (
	"context"
	"errors"
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	repo     domain.ContactRepository
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(repo domain.ContactRepository, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{repo: repo, validate: validate}
}

// Submit validates and stores a contact message
func (uc *contactUsecase) Submit(ctx context.Context, input domain.ContactInput) (*domain.ContactMessage, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateInput(uc.validate, input); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		Name:     input.Name,
		Email:    input.Email,
		Category: input.Category,
		Message:  input.Message,
	}
	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}
	return msg, nil
}

func (uc *contactUsecase) Get(ctx context.Context, id string) (*domain.ContactMessage, error) {
	msg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Contact message not found")
		}
		return nil, apperror.Internal(err)
	}
	return msg, nil
}
