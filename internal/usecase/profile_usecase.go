package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type seekerProfileUsecase struct {
	repo     domain.SeekerRepository
	validate *validator.Validate
}

// NewSeekerProfileUsecase creates a new seeker profile usecase
func NewSeekerProfileUsecase(repo domain.SeekerRepository, validate *validator.Validate) domain.SeekerProfileUsecase {
	return &seekerProfileUsecase{repo: repo, validate: validate}
}

// GetPublicProfile needs no authorization. The password hash never leaves
// the domain type.
func (uc *seekerProfileUsecase) GetPublicProfile(ctx context.Context, id string) (*domain.Seeker, error) {
	seeker, err := uc.repo.GetSeeker(ctx, id)
	if err != nil {
		return nil, mapProfileError(err, "Seeker not found")
	}
	return seeker, nil
}

func (uc *seekerProfileUsecase) UpdateProfile(ctx context.Context, id string, patch domain.SeekerProfilePatch) (*domain.Seeker, error) {
	if err := validateInput(uc.validate, patch); err != nil {
		return nil, err
	}
	seeker, err := uc.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return nil, mapProfileError(err, "Seeker not found")
	}
	return seeker, nil
}

type employerProfileUsecase struct {
	repo     domain.EmployerRepository
	validate *validator.Validate
}

// NewEmployerProfileUsecase creates a new employer profile usecase
func NewEmployerProfileUsecase(repo domain.EmployerRepository, validate *validator.Validate) domain.EmployerProfileUsecase {
	return &employerProfileUsecase{repo: repo, validate: validate}
}

func (uc *employerProfileUsecase) GetPublicProfile(ctx context.Context, id string) (*domain.Employer, error) {
	employer, err := uc.repo.GetEmployer(ctx, id)
	if err != nil {
		return nil, mapProfileError(err, "Employer not found")
	}
	return employer, nil
}

func (uc *employerProfileUsecase) UpdateProfile(ctx context.Context, id string, patch domain.EmployerProfilePatch) (*domain.Employer, error) {
	if err := validateInput(uc.validate, patch); err != nil {
		return nil, err
	}
	employer, err := uc.repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return nil, mapProfileError(err, "Employer not found")
	}
	return employer, nil
}

func mapProfileError(err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Conflict("Phone number is already in use")
	default:
		return apperror.Internal(err)
	}
}
