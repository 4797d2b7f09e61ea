package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrStateChanged = errors.New("resource state changed")
)

type JobType string

const (
	JobTypeDaily     JobType = "daily"
	JobTypeShortTerm JobType = "short-term"
	JobTypePartTime  JobType = "part-time"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
)

// Job is a posting. PostedByName and PostedByImage are copied from the
// employer at creation and are not updated when the employer profile changes.
type Job struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	JobType        JobType    `json:"jobType"`
	SkillsRequired []string   `json:"skillsRequired"`
	Location       string     `json:"location"`
	PinCode        string     `json:"pinCode,omitempty"`
	Salary         float64    `json:"salary"`
	Status         JobStatus  `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	PostedBy       string     `json:"postedBy"`
	PostedByName   string     `json:"postedByName"`
	PostedByImage  string     `json:"postedByImage"`
	Applicants     []string   `json:"applicants"`
}

type JobInput struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Description    string     `json:"description" validate:"required,max=5000"`
	JobType        JobType    `json:"jobType" validate:"required,oneof=daily short-term part-time"`
	SkillsRequired []string   `json:"skillsRequired" validate:"max=50,dive,required,max=50"`
	Location       string     `json:"location" validate:"required,max=200"`
	PinCode        string     `json:"pinCode" validate:"max=12"`
	Salary         float64    `json:"salary" validate:"gte=0"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// JobPatch applies only non-nil fields. There is no way to change PostedBy.
type JobPatch struct {
	Title          *string    `json:"title" validate:"omitnil,min=1,max=200"`
	Description    *string    `json:"description" validate:"omitnil,min=1,max=5000"`
	JobType        *JobType   `json:"jobType" validate:"omitnil,oneof=daily short-term part-time"`
	SkillsRequired *[]string  `json:"skillsRequired" validate:"omitnil,max=50,dive,required,max=50"`
	Location       *string    `json:"location" validate:"omitnil,min=1,max=200"`
	PinCode        *string    `json:"pinCode" validate:"omitnil,max=12"`
	Salary         *float64   `json:"salary" validate:"omitnil,gte=0"`
	Status         *JobStatus `json:"status" validate:"omitnil,oneof=open in-progress completed"`
	ExpiresAt      *time.Time `json:"expiresAt"`
}

// IsEmpty reports whether the patch would change nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.JobType == nil &&
		p.SkillsRequired == nil && p.Location == nil && p.PinCode == nil &&
		p.Salary == nil && p.Status == nil && p.ExpiresAt == nil
}

type JobFilter struct {
	Title     string
	Location  string
	JobType   string
	Status    string
	Skills    []string // any-of
	SalaryGTE *float64
	SalaryLTE *float64
}

// Sortable job fields, by their API name.
const (
	JobSortCreatedAt = "createdAt"
	JobSortSalary    = "salary"
	JobSortTitle     = "title"
	JobSortExpiresAt = "expiresAt"
)

const (
	DefaultJobPageSize = 10
	MaxJobPageSize     = 100
)

type JobSort struct {
	Field string
	Desc  bool
}

type JobQuery struct {
	Filter JobFilter
	Sort   JobSort
	Limit  int
	Offset int
}

type JobPage struct {
	Items      []Job `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, q JobQuery) ([]Job, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]Job, error)
	ListByPostedBy(ctx context.Context, employerID string) ([]Job, error)
	Update(ctx context.Context, id string, patch JobPatch) (*Job, error)
	Delete(ctx context.Context, id string) error
	AddApplicant(ctx context.Context, jobID, seekerID string) error
	RemoveApplicant(ctx context.Context, jobID, seekerID string) error
}

type JobUsecase interface {
	Create(ctx context.Context, employerID string, input JobInput) (*Job, error)
	Get(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter JobFilter, page, limit int, sort string) (*JobPage, error)
	ListByOwner(ctx context.Context, employerID string) ([]Job, error)
	ListByPoster(ctx context.Context, posterID string) ([]Job, error)
	Update(ctx context.Context, id, employerID string, patch JobPatch) (*Job, error)
	Delete(ctx context.Context, id, employerID string) error
	ListApplicants(ctx context.Context, id, employerID string) ([]ApplicantView, error)
	ExportApplicants(ctx context.Context, id, employerID string) ([]byte, string, error)
}
