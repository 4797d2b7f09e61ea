package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	apps    *MockApplicationRepo
	jobs    *MockJobRepo
	seekers *MockSeekerRepo
	uc      domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		apps:    new(MockApplicationRepo),
		jobs:    new(MockJobRepo),
		seekers: new(MockSeekerRepo),
	}
	f.uc = usecase.NewApplicationUsecase(f.apps, f.jobs, f.seekers, nil)
	return f
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	openJob := &domain.Job{ID: "j1", PostedBy: "e1", Status: domain.JobStatusOpen}

	t.Run("Should create the application and link both sides", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)
		f.apps.On("Exists", ctx, "j1", "s1").Return(false, nil)
		f.apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = "a1"
		}).Return(nil)
		f.jobs.On("AddApplicant", ctx, "j1", "s1").Return(nil)
		f.seekers.On("AddAppliedJob", ctx, "s1", "j1").Return(nil)

		app, err := f.uc.Apply(ctx, "j1", "s1")
		require.NoError(t, err)

		assert.Equal(t, "a1", app.ID)
		assert.Equal(t, "e1", app.JobHost)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		f.jobs.AssertExpectations(t)
		f.seekers.AssertExpectations(t)
	})

	t.Run("Should reject a second application to the same job", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)
		f.apps.On("Exists", ctx, "j1", "s1").Return(true, nil)

		_, err := f.uc.Apply(ctx, "j1", "s1")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.jobs.AssertNotCalled(t, "AddApplicant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should treat a unique violation on insert as a duplicate", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)
		f.apps.On("Exists", ctx, "j1", "s1").Return(false, nil)
		f.apps.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicate)

		_, err := f.uc.Apply(ctx, "j1", "s1")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		f.seekers.AssertNotCalled(t, "AddAppliedJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forbid applying to one's own job", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)

		_, err := f.uc.Apply(ctx, "j1", "e1")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should reject a job that is no longer open", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j2").Return(&domain.Job{ID: "j2", PostedBy: "e1", Status: domain.JobStatusCompleted}, nil)

		_, err := f.uc.Apply(ctx, "j2", "s1")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		f.apps.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should return NotFound for an unknown job", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, "nope", "s1")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Should remove the application when the job cannot be linked", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)
		f.apps.On("Exists", ctx, "j1", "s1").Return(false, nil)
		f.apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = "a1"
		}).Return(nil)
		f.jobs.On("AddApplicant", ctx, "j1", "s1").Return(errors.New("db down"))
		f.apps.On("Delete", mock.Anything, "a1").Return(nil)

		_, err := f.uc.Apply(ctx, "j1", "s1")
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		f.apps.AssertCalled(t, "Delete", mock.Anything, "a1")
		f.jobs.AssertNotCalled(t, "RemoveApplicant", mock.Anything, mock.Anything, mock.Anything)
		f.seekers.AssertNotCalled(t, "AddAppliedJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should unlink the job and remove the application when the seeker cannot be linked", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(openJob, nil)
		f.apps.On("Exists", ctx, "j1", "s1").Return(false, nil)
		f.apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = "a1"
		}).Return(nil)
		f.jobs.On("AddApplicant", ctx, "j1", "s1").Return(nil)
		f.seekers.On("AddAppliedJob", ctx, "s1", "j1").Return(errors.New("db down"))
		f.jobs.On("RemoveApplicant", mock.Anything, "j1", "s1").Return(nil)
		f.apps.On("Delete", mock.Anything, "a1").Return(nil)

		_, err := f.uc.Apply(ctx, "j1", "s1")
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		f.jobs.AssertCalled(t, "RemoveApplicant", mock.Anything, "j1", "s1")
		f.apps.AssertCalled(t, "Delete", mock.Anything, "a1")
	})
}

func TestApplicationLists(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return an empty list for a seeker with no applications", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("ListByApplicant", ctx, "s1").Return(nil, nil)

		got, err := f.uc.ListForApplicant(ctx, "s1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Should wrap storage failures as internal errors", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("ListByApplicant", ctx, "s1").Return(nil, errors.New("timeout"))

		_, err := f.uc.ListForApplicant(ctx, "s1")
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	})

	t.Run("Should only list a job's applications for its owner", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobs.On("GetByID", ctx, "j1").Return(&domain.Job{ID: "j1", PostedBy: "e1"}, nil)
		f.apps.On("ListByJob", ctx, "j1").Return([]domain.Application{{ID: "a1"}}, nil)

		_, err := f.uc.ListForJob(ctx, "j1", "e2")
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

		got, err := f.uc.ListForJob(ctx, "j1", "e1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		f.apps.AssertNumberOfCalls(t, "ListByJob", 1)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Should accept a pending application and keep the decision final", func(t *testing.T) {
		f := newApplicationFixture()
		pending := &domain.Application{ID: "a1", JobHost: "e1", Status: domain.ApplicationStatusApplied}
		accepted := &domain.Application{ID: "a1", JobHost: "e1", Status: domain.ApplicationStatusAccepted}

		f.apps.On("GetByID", ctx, "a1").Return(pending, nil).Once()
		f.apps.On("UpdateStatus", ctx, "a1", domain.ApplicationStatusApplied, domain.ApplicationStatusAccepted).
			Return(accepted, nil).Once()

		got, err := f.uc.UpdateStatus(ctx, "a1", "e1", domain.ApplicationStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, got.Status)

		f.apps.On("GetByID", ctx, "a1").Return(accepted, nil)

		_, err = f.uc.UpdateStatus(ctx, "a1", "e1", domain.ApplicationStatusRejected)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		f.apps.AssertNumberOfCalls(t, "UpdateStatus", 1)
	})

	t.Run("Should report a concurrent decision as a conflict", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", ctx, "a1").Return(&domain.Application{ID: "a1", JobHost: "e1", Status: domain.ApplicationStatusApplied}, nil)
		f.apps.On("UpdateStatus", ctx, "a1", domain.ApplicationStatusApplied, domain.ApplicationStatusRejected).
			Return(nil, domain.ErrStateChanged)

		_, err := f.uc.UpdateStatus(ctx, "a1", "e1", domain.ApplicationStatusRejected)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("Should forbid an employer who does not host the job", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", ctx, "a1").Return(&domain.Application{ID: "a1", JobHost: "e1", Status: domain.ApplicationStatusApplied}, nil)

		_, err := f.uc.UpdateStatus(ctx, "a1", "e2", domain.ApplicationStatusAccepted)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject statuses other than accepted and rejected", func(t *testing.T) {
		f := newApplicationFixture()
		for _, status := range []domain.ApplicationStatus{domain.ApplicationStatusApplied, "hired", ""} {
			_, err := f.uc.UpdateStatus(ctx, "a1", "e1", status)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "status %q", status)
		}
		f.apps.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should return NotFound for an unknown application", func(t *testing.T) {
		f := newApplicationFixture()
		f.apps.On("GetByID", ctx, "nope").Return(nil, domain.ErrNotFound)

		_, err := f.uc.UpdateStatus(ctx, "nope", "e1", domain.ApplicationStatusAccepted)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
