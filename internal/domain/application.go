package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// applied → accepted | rejected. accepted and rejected are terminal.
const (
	ApplicationStatusApplied  ApplicationStatus = "applied"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application links one seeker to one job. JobHost is the job's poster at
// the time of applying.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	ApplicantID string            `json:"applicantId"`
	JobHost     string            `json:"jobHost"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`
}

// JobWithPoster expands a job with its poster's current contact details.
type JobWithPoster struct {
	Job
	PosterName  string `json:"posterName"`
	PosterEmail string `json:"posterEmail"`
	PosterImage string `json:"posterImage"`
}

type ApplicationWithJob struct {
	Application
	Job JobWithPoster `json:"job"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]ApplicationWithJob, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	// UpdateStatus only succeeds while the stored status still equals from.
	UpdateStatus(ctx context.Context, id string, from, to ApplicationStatus) (*Application, error)
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, jobID, applicantID string) (*Application, error)
	ListForApplicant(ctx context.Context, applicantID string) ([]ApplicationWithJob, error)
	ListForJob(ctx context.Context, jobID, employerID string) ([]Application, error)
	UpdateStatus(ctx context.Context, applicationID, employerID string, status ApplicationStatus) (*Application, error)
}
