package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job-board-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, description, job_type, skills_required, location, pin_code, salary,
	status, created_at, expires_at, posted_by, posted_by_name, posted_by_image, applicants`

// sortable API fields mapped to their columns
var jobSortColumns = map[string]string{
	domain.JobSortCreatedAt: "created_at",
	domain.JobSortSalary:    "salary",
	domain.JobSortTitle:     "title",
	domain.JobSortExpiresAt: "expires_at",
}

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.JobType, &j.SkillsRequired, &j.Location, &j.PinCode, &j.Salary,
		&j.Status, &j.CreatedAt, &j.ExpiresAt, &j.PostedBy, &j.PostedByName, &j.PostedByImage, &j.Applicants,
	)
	if err != nil {
		return nil, err
	}
	j.SkillsRequired = emptyIfNil(j.SkillsRequired)
	j.Applicants = emptyIfNil(j.Applicants)
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = domain.JobStatusOpen
	}

	query := `INSERT INTO jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.JobType, emptyIfNil(job.SkillsRequired), job.Location,
		job.PinCode, job.Salary, job.Status, job.CreatedAt, job.ExpiresAt, job.PostedBy,
		job.PostedByName, job.PostedByImage, emptyIfNil(job.Applicants),
	)
	if err != nil {
		job.ID = ""
		return mapError(err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

// jobWhere builds the WHERE clause for a filter. Text filters are
// case-insensitive substring matches; skills match when any overlaps.
func jobWhere(f domain.JobFilter) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if f.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argIndex))
		args = append(args, "%"+escapeLike(f.Title)+"%")
		argIndex++
	}
	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, "%"+escapeLike(f.Location)+"%")
		argIndex++
	}
	if f.JobType != "" {
		conditions = append(conditions, fmt.Sprintf("job_type = $%d", argIndex))
		args = append(args, f.JobType)
		argIndex++
	}
	if f.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, f.Status)
		argIndex++
	}
	if len(f.Skills) > 0 {
		conditions = append(conditions, fmt.Sprintf("skills_required && $%d::text[]", argIndex))
		args = append(args, f.Skills)
		argIndex++
	}
	if f.SalaryGTE != nil {
		conditions = append(conditions, fmt.Sprintf("salary >= $%d", argIndex))
		args = append(args, *f.SalaryGTE)
		argIndex++
	}
	if f.SalaryLTE != nil {
		conditions = append(conditions, fmt.Sprintf("salary <= $%d", argIndex))
		args = append(args, *f.SalaryLTE)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func jobOrderBy(s domain.JobSort) string {
	column, ok := jobSortColumns[s.Field]
	if !ok {
		column = "created_at"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, id %s", column, dir, dir)
}

func (r *jobRepo) List(ctx context.Context, q domain.JobQuery) ([]domain.Job, int64, error) {
	where, args := jobWhere(q.Filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Job{}, 0, nil
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where + jobOrderBy(q.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return []domain.Job{}, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1::text[]) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *jobRepo) ListByPostedBy(ctx context.Context, employerID string) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE posted_by = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

// Update writes only the fields present in the patch. posted_by is never touched.
func (r *jobRepo) Update(ctx context.Context, id string, patch domain.JobPatch) (*domain.Job, error) {
	var b setBuilder
	if patch.Title != nil {
		b.add("title", *patch.Title)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.JobType != nil {
		b.add("job_type", *patch.JobType)
	}
	if patch.SkillsRequired != nil {
		b.add("skills_required", emptyIfNil(*patch.SkillsRequired))
	}
	if patch.Location != nil {
		b.add("location", *patch.Location)
	}
	if patch.PinCode != nil {
		b.add("pin_code", *patch.PinCode)
	}
	if patch.Salary != nil {
		b.add("salary", *patch.Salary)
	}
	if patch.Status != nil {
		b.add("status", *patch.Status)
	}
	if patch.ExpiresAt != nil {
		b.add("expires_at", *patch.ExpiresAt)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	query, args := b.build("jobs", id, jobColumns)
	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) AddApplicant(ctx context.Context, jobID, seekerID string) error {
	query := `UPDATE jobs
		SET applicants = CASE WHEN $2 = ANY(applicants) THEN applicants ELSE array_append(applicants, $2) END
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, jobID, seekerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) RemoveApplicant(ctx context.Context, jobID, seekerID string) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET applicants = array_remove(applicants, $2) WHERE id = $1`, jobID, seekerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
