package v1_test

import (
	"context"

	"job-board-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockJobUC struct {
	mock.Mock
}

func (m *MockJobUC) Create(ctx context.Context, employerID string, input domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, employerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) Get(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) List(ctx context.Context, filter domain.JobFilter, page, limit int, sort string) (*domain.JobPage, error) {
	args := m.Called(ctx, filter, page, limit, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPage), args.Error(1)
}

func (m *MockJobUC) ListByOwner(ctx context.Context, employerID string) ([]domain.Job, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobUC) ListByPoster(ctx context.Context, posterID string) ([]domain.Job, error) {
	args := m.Called(ctx, posterID)
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobUC) Update(ctx context.Context, id, employerID string, patch domain.JobPatch) (*domain.Job, error) {
	args := m.Called(ctx, id, employerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUC) Delete(ctx context.Context, id, employerID string) error {
	return m.Called(ctx, id, employerID).Error(0)
}

func (m *MockJobUC) ListApplicants(ctx context.Context, id, employerID string) ([]domain.ApplicantView, error) {
	args := m.Called(ctx, id, employerID)
	return args.Get(0).([]domain.ApplicantView), args.Error(1)
}

func (m *MockJobUC) ExportApplicants(ctx context.Context, id, employerID string) ([]byte, string, error) {
	args := m.Called(ctx, id, employerID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockApplicationUC struct {
	mock.Mock
}

func (m *MockApplicationUC) Apply(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationUC) ListForApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error) {
	args := m.Called(ctx, applicantID)
	return args.Get(0).([]domain.ApplicationWithJob), args.Error(1)
}

func (m *MockApplicationUC) ListForJob(ctx context.Context, jobID, employerID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID, employerID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationUC) UpdateStatus(ctx context.Context, applicationID, employerID string, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(ctx, applicationID, employerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

type MockAccountUC struct {
	mock.Mock
}

func (m *MockAccountUC) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountUC) ResendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAccountUC) VerifyRegistration(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAccountUC) Login(ctx context.Context, email, password, clientIP string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAccountUC) ContinueWithGoogle(ctx context.Context, idToken string) (*domain.OAuthResult, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OAuthResult), args.Error(1)
}

func (m *MockAccountUC) CompleteGoogleRegistration(ctx context.Context, input domain.GoogleCompletionInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

type MockDocumentUC struct {
	mock.Mock
}

func (m *MockDocumentUC) RequestUploadSlot(ctx context.Context, employerID, contentType string) (*domain.UploadSlot, error) {
	args := m.Called(ctx, employerID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSlot), args.Error(1)
}

func (m *MockDocumentUC) ConfirmUpload(ctx context.Context, employerID, key string) error {
	return m.Called(ctx, employerID, key).Error(0)
}

func (m *MockDocumentUC) GetViewURL(ctx context.Context, employerID string) (string, error) {
	args := m.Called(ctx, employerID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentUC) GetDownloadURL(ctx context.Context, employerID string) (string, error) {
	args := m.Called(ctx, employerID)
	return args.String(0), args.Error(1)
}
