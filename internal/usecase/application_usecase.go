package usecase

import (
	"context"
	"errors"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	seekerRepo      domain.SeekerRepository
	secLog          *security.SecurityLogger
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	seekerRepo domain.SeekerRepository,
	secLog *security.SecurityLogger,
) domain.ApplicationUsecase {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		seekerRepo:      seekerRepo,
		secLog:          secLog,
	}
}

// Apply records a seeker's application. The (job, applicant) pair is also
// unique in storage, so a concurrent duplicate fails on insert.
func (uc *applicationUsecase) Apply(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	if job.PostedBy == applicantID {
		return nil, apperror.Forbidden("You cannot apply to your own job")
	}
	if job.Status != domain.JobStatusOpen {
		return nil, apperror.BadRequest("This job is no longer accepting applications")
	}

	exists, err := uc.applicationRepo.Exists(ctx, jobID, applicantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		JobHost:     job.PostedBy,
		Status:      domain.ApplicationStatusApplied,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	if err := uc.jobRepo.AddApplicant(ctx, jobID, applicantID); err != nil {
		uc.undoApply(ctx, app, false)
		return nil, apperror.Internal(err)
	}
	if err := uc.seekerRepo.AddAppliedJob(ctx, applicantID, jobID); err != nil {
		uc.undoApply(ctx, app, true)
		return nil, apperror.Internal(err)
	}

	return app, nil
}

// undoApply removes what Apply already wrote so the seeker can retry.
func (uc *applicationUsecase) undoApply(ctx context.Context, app *domain.Application, linkedToJob bool) {
	ctx = context.WithoutCancel(ctx)
	if linkedToJob {
		if err := uc.jobRepo.RemoveApplicant(ctx, app.JobID, app.ApplicantID); err != nil {
			logger.Log.Error("Failed to unlink applicant after apply failed",
				"job_id", app.JobID, "applicant_id", app.ApplicantID, "error", err)
		}
	}
	if err := uc.applicationRepo.Delete(ctx, app.ID); err != nil {
		logger.Log.Error("Failed to remove application after apply failed", "application_id", app.ID, "error", err)
	}
}

// ListForApplicant returns an empty list when the seeker has not applied anywhere.
func (uc *applicationUsecase) ListForApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error) {
	apps, err := uc.applicationRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.ApplicationWithJob{}
	}
	return apps, nil
}

func (uc *applicationUsecase) ListForJob(ctx context.Context, jobID, employerID string) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.PostedBy != employerID {
		uc.secLog.LogOwnershipDenied(ctx, employerID, "job", jobID)
		return nil, apperror.Forbidden("You do not own this job")
	}

	apps, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// UpdateStatus moves an application out of "applied". Accepted and rejected
// are final; a second decision is a Conflict.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, applicationID, employerID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.IsTerminal() {
		return nil, apperror.BadRequest("status must be one of: accepted, rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	if app.JobHost != employerID {
		uc.secLog.LogOwnershipDenied(ctx, employerID, "application", applicationID)
		return nil, apperror.Forbidden("You do not own the job for this application")
	}
	if app.Status.IsTerminal() {
		return nil, apperror.Conflict("Application has already been " + string(app.Status))
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, applicationID, app.Status, status)
	if err != nil {
		if errors.Is(err, domain.ErrStateChanged) {
			return nil, apperror.Conflict("Application status was changed by another request")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}
