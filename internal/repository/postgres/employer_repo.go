package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type employerRepo struct {
	accountStore
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepo{accountStore{db: db, table: "employers"}}
}

func (r *employerRepo) Create(ctx context.Context, account *domain.Account, extras domain.AccountExtras) error {
	return r.insert(ctx, account, []string{"company_name"}, []any{extras.CompanyName})
}

func (r *employerRepo) GetEmployer(ctx context.Context, id string) (*domain.Employer, error) {
	query := `SELECT ` + accountColumns + `, company_name, website, industry, location,
			verification_document, ratings, created_jobs
		FROM employers WHERE id = $1`

	var e domain.Employer
	var ratings []byte
	err := scanAccount(r.db.QueryRow(ctx, query, id), &e.Account,
		&e.CompanyName, &e.Website, &e.Industry, &e.Location,
		&e.VerificationDocument, &ratings, &e.CreatedJobs)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(ratings, &e.Ratings); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}

	e.Ratings = emptyIfNil(e.Ratings)
	e.CreatedJobs = emptyIfNil(e.CreatedJobs)
	return &e, nil
}

func (r *employerRepo) UpdateProfile(ctx context.Context, id string, patch domain.EmployerProfilePatch) (*domain.Employer, error) {
	var b setBuilder
	fields := []struct {
		column string
		value  *string
	}{
		{"name", patch.Name},
		{"phone", patch.Phone},
		{"description", patch.Description},
		{"profile_picture", patch.ProfilePicture},
		{"company_name", patch.CompanyName},
		{"website", patch.Website},
		{"industry", patch.Industry},
		{"location", patch.Location},
	}
	for _, f := range fields {
		if f.value != nil {
			b.add(f.column, *f.value)
		}
	}

	if !b.empty() {
		b.raw("updated_at", "NOW()")
		query, args := b.build(r.table, id, "")
		tag, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			return nil, mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return r.GetEmployer(ctx, id)
}

func (r *employerRepo) AddCreatedJob(ctx context.Context, employerID, jobID string) error {
	return r.addToSet(ctx, "created_jobs", employerID, jobID)
}

func (r *employerRepo) RemoveCreatedJob(ctx context.Context, employerID, jobID string) error {
	query := `UPDATE employers SET created_jobs = array_remove(created_jobs, $2), updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, employerID, jobID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *employerRepo) SetVerificationDocument(ctx context.Context, employerID, key string) error {
	query := `UPDATE employers SET verification_document = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, employerID, key)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
