package domain

import (
	"context"
	"time"
)

// Role separates the two account namespaces. Emails and phones are unique per role.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
)

type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// Account holds the fields shared by seekers and employers.
type Account struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	PasswordHash   string       `json:"-"`
	IsVerified     bool         `json:"isVerified"`
	AuthProvider   AuthProvider `json:"authProvider"`
	GoogleID       string       `json:"-"`
	Description    string       `json:"description"`
	ProfilePicture string       `json:"profilePicture"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	StartYear    int    `json:"startYear,omitempty"`
	EndYear      int    `json:"endYear,omitempty"`
}

// Rating is a score an employer received from a seeker.
type Rating struct {
	SeekerID  string    `json:"seekerId"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Seeker struct {
	Account
	Skills      []string          `json:"skills"`
	Experience  []ExperienceEntry `json:"experience"`
	Education   []EducationEntry  `json:"education"`
	Resume      string            `json:"resume"`
	AppliedJobs []string          `json:"appliedJobs"`
}

type Employer struct {
	Account
	CompanyName          string   `json:"companyName"`
	Website              string   `json:"website"`
	Industry             string   `json:"industry"`
	Location             string   `json:"location"`
	VerificationDocument string   `json:"verificationDocument,omitempty"`
	Ratings              []Rating `json:"ratings"`
	CreatedJobs          []string `json:"createdJobs"`
}

// ApplicantView is the projection of a seeker shown to the employer who owns the job.
type ApplicantView struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Resume         string            `json:"resume"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	ProfilePicture string            `json:"profilePicture"`
}

// AccountExtras carries role-specific fields needed at creation time.
type AccountExtras struct {
	CompanyName string
}

// SeekerProfilePatch applies only non-nil fields. A non-nil empty value clears the field.
type SeekerProfilePatch struct {
	Name           *string            `json:"name" validate:"omitnil,min=1,valid_name,max=100"`
	Phone          *string            `json:"phone" validate:"omitnil,min=3,valid_phone"`
	Description    *string            `json:"description" validate:"omitnil,max=2000"`
	ProfilePicture *string            `json:"profilePicture" validate:"omitnil,max=2048"`
	Skills         *[]string          `json:"skills" validate:"omitnil,max=50,dive,required,max=50"`
	Experience     *[]ExperienceEntry `json:"experience" validate:"omitnil,max=30"`
	Education      *[]EducationEntry  `json:"education" validate:"omitnil,max=30"`
	Resume         *string            `json:"resume" validate:"omitnil,max=2048"`
}

type EmployerProfilePatch struct {
	Name           *string `json:"name" validate:"omitnil,min=1,valid_name,max=100"`
	Phone          *string `json:"phone" validate:"omitnil,min=3,valid_phone"`
	Description    *string `json:"description" validate:"omitnil,max=2000"`
	ProfilePicture *string `json:"profilePicture" validate:"omitnil,max=2048"`
	CompanyName    *string `json:"companyName" validate:"omitnil,max=200"`
	Website        *string `json:"website" validate:"omitnil,max=2048"`
	Industry       *string `json:"industry" validate:"omitnil,max=100"`
	Location       *string `json:"location" validate:"omitnil,max=200"`
}

// AccountRepository is the storage contract shared by both roles.
type AccountRepository interface {
	Create(ctx context.Context, account *Account, extras AccountExtras) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	MarkVerified(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SeekerRepository interface {
	AccountRepository
	GetSeeker(ctx context.Context, id string) (*Seeker, error)
	UpdateProfile(ctx context.Context, id string, patch SeekerProfilePatch) (*Seeker, error)
	AddAppliedJob(ctx context.Context, seekerID, jobID string) error
	GetApplicantViews(ctx context.Context, ids []string) ([]ApplicantView, error)
}

type EmployerRepository interface {
	AccountRepository
	GetEmployer(ctx context.Context, id string) (*Employer, error)
	UpdateProfile(ctx context.Context, id string, patch EmployerProfilePatch) (*Employer, error)
	AddCreatedJob(ctx context.Context, employerID, jobID string) error
	RemoveCreatedJob(ctx context.Context, employerID, jobID string) error
	SetVerificationDocument(ctx context.Context, employerID, key string) error
}

type SeekerProfileUsecase interface {
	GetPublicProfile(ctx context.Context, id string) (*Seeker, error)
	UpdateProfile(ctx context.Context, id string, patch SeekerProfilePatch) (*Seeker, error)
}

type EmployerProfileUsecase interface {
	GetPublicProfile(ctx context.Context, id string) (*Employer, error)
	UpdateProfile(ctx context.Context, id string, patch EmployerProfilePatch) (*Employer, error)
}
