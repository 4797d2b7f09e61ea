package postgres

import (
	"context"
	"errors"
	"time"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, job_id, applicant_id, job_host, status, applied_at`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	if err := row.Scan(&a.ID, &a.JobID, &a.ApplicantID, &a.JobHost, &a.Status, &a.AppliedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create relies on UNIQUE (job_id, applicant_id); a second insert for the
// same pair returns domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	app.ID = uuid.NewString()
	app.AppliedAt = time.Now().UTC()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}

	query := `INSERT INTO applications (` + applicationColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query, app.ID, app.JobID, app.ApplicantID, app.JobHost, app.Status, app.AppliedAt); err != nil {
		app.ID = ""
		return mapError(err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	return exists, err
}

// ListByApplicant expands each application with its job and the poster's
// current name, email and image.
func (r *applicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.ApplicationWithJob, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.job_host, a.status, a.applied_at,
			j.id, j.title, j.description, j.job_type, j.skills_required, j.location, j.pin_code, j.salary,
			j.status, j.created_at, j.expires_at, j.posted_by, j.posted_by_name, j.posted_by_image, j.applicants,
			COALESCE(NULLIF(e.company_name, ''), e.name, j.posted_by_name),
			COALESCE(e.email, ''),
			COALESCE(e.profile_picture, j.posted_by_image)
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		LEFT JOIN employers e ON e.id = j.posted_by
		WHERE a.applicant_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.ApplicationWithJob{}
	for rows.Next() {
		var item domain.ApplicationWithJob
		a, j := &item.Application, &item.Job
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.JobHost, &a.Status, &a.AppliedAt,
			&j.ID, &j.Title, &j.Description, &j.JobType, &j.SkillsRequired, &j.Location, &j.PinCode, &j.Salary,
			&j.Status, &j.CreatedAt, &j.ExpiresAt, &j.PostedBy, &j.PostedByName, &j.PostedByImage, &j.Applicants,
			&j.PosterName, &j.PosterEmail, &j.PosterImage,
		); err != nil {
			return nil, err
		}
		j.SkillsRequired = emptyIfNil(j.SkillsRequired)
		j.Applicants = emptyIfNil(j.Applicants)
		apps = append(apps, item)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateStatus is a compare-and-set on the status column, so two employers
// deciding at once cannot both win.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) (*domain.Application, error) {
	query := `UPDATE applications SET status = $3 WHERE id = $1 AND status = $2 RETURNING ` + applicationColumns
	app, err := scanApplication(r.db.QueryRow(ctx, query, id, from, to))
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domain.ErrStateChanged
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
