package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"job-board-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seekerRepo struct {
	accountStore
}

func NewSeekerRepository(db *pgxpool.Pool) domain.SeekerRepository {
	return &seekerRepo{accountStore{db: db, table: "seekers"}}
}

func (r *seekerRepo) Create(ctx context.Context, account *domain.Account, _ domain.AccountExtras) error {
	return r.insert(ctx, account, nil, nil)
}

func (r *seekerRepo) GetSeeker(ctx context.Context, id string) (*domain.Seeker, error) {
	query := `SELECT ` + accountColumns + `, skills, experience, education, resume, applied_jobs
		FROM seekers WHERE id = $1`

	var s domain.Seeker
	var experience, education []byte
	err := scanAccount(r.db.QueryRow(ctx, query, id), &s.Account,
		&s.Skills, &experience, &education, &s.Resume, &s.AppliedJobs)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(experience, &s.Experience); err != nil {
		return nil, fmt.Errorf("decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &s.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}

	s.Skills = emptyIfNil(s.Skills)
	s.Experience = emptyIfNil(s.Experience)
	s.Education = emptyIfNil(s.Education)
	s.AppliedJobs = emptyIfNil(s.AppliedJobs)
	return &s, nil
}

func (r *seekerRepo) UpdateProfile(ctx context.Context, id string, patch domain.SeekerProfilePatch) (*domain.Seeker, error) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Phone != nil {
		b.add("phone", *patch.Phone)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.ProfilePicture != nil {
		b.add("profile_picture", *patch.ProfilePicture)
	}
	if patch.Skills != nil {
		b.add("skills", emptyIfNil(*patch.Skills))
	}
	if patch.Experience != nil {
		raw, err := json.Marshal(emptyIfNil(*patch.Experience))
		if err != nil {
			return nil, err
		}
		b.add("experience", raw)
	}
	if patch.Education != nil {
		raw, err := json.Marshal(emptyIfNil(*patch.Education))
		if err != nil {
			return nil, err
		}
		b.add("education", raw)
	}
	if patch.Resume != nil {
		b.add("resume", *patch.Resume)
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
	return r.GetSeeker(ctx, id)
}

func (r *seekerRepo) AddAppliedJob(ctx context.Context, seekerID, jobID string) error {
	return r.addToSet(ctx, "applied_jobs", seekerID, jobID)
}

// GetApplicantViews returns the seekers in ids order. Unknown ids are skipped.
func (r *seekerRepo) GetApplicantViews(ctx context.Context, ids []string) ([]domain.ApplicantView, error) {
	if len(ids) == 0 {
		return []domain.ApplicantView{}, nil
	}

	query := `SELECT id, name, email, phone, resume, skills, experience, education, profile_picture
		FROM seekers
		WHERE id = ANY($1::text[])
		ORDER BY array_position($1::text[], id)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.ApplicantView{}
	for rows.Next() {
		var v domain.ApplicantView
		var experience, education []byte
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Resume, &v.Skills,
			&experience, &education, &v.ProfilePicture); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(experience, &v.Experience); err != nil {
			return nil, fmt.Errorf("decode experience: %w", err)
		}
		if err := json.Unmarshal(education, &v.Education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
		v.Skills = emptyIfNil(v.Skills)
		v.Experience = emptyIfNil(v.Experience)
		v.Education = emptyIfNil(v.Education)
		views = append(views, v)
	}
	return views, rows.Err()
}
