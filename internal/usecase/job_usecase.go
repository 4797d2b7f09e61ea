package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	employerRepo domain.EmployerRepository
	seekerRepo   domain.SeekerRepository
	secLog       *security.SecurityLogger
	validate     *validator.Validate
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(
	jobRepo domain.JobRepository,
	employerRepo domain.EmployerRepository,
	seekerRepo domain.SeekerRepository,
	secLog *security.SecurityLogger,
	validate *validator.Validate,
) domain.JobUsecase {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &jobUsecase{
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
		seekerRepo:   seekerRepo,
		secLog:       secLog,
		validate:     validate,
	}
}

// Create stores the job and then records it on the employer. The poster name
// and image are a snapshot taken here.
func (uc *jobUsecase) Create(ctx context.Context, employerID string, input domain.JobInput) (*domain.Job, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Location = strings.TrimSpace(input.Location)
	if err := validateInput(uc.validate, input); err != nil {
		return nil, err
	}

	employer, err := uc.employerRepo.GetEmployer(ctx, employerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employer not found")
		}
		return nil, apperror.Internal(err)
	}

	posterName := employer.CompanyName
	if posterName == "" {
		posterName = employer.Name
	}

	job := &domain.Job{
		Title:          input.Title,
		Description:    input.Description,
		JobType:        input.JobType,
		SkillsRequired: normalizeSkills(input.SkillsRequired),
		Location:       input.Location,
		PinCode:        input.PinCode,
		Salary:         input.Salary,
		Status:         domain.JobStatusOpen,
		ExpiresAt:      input.ExpiresAt,
		PostedBy:       employer.ID,
		PostedByName:   posterName,
		PostedByImage:  employer.ProfilePicture,
		Applicants:     []string{},
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.employerRepo.AddCreatedJob(ctx, employer.ID, job.ID); err != nil {
		if derr := uc.jobRepo.Delete(context.WithoutCancel(ctx), job.ID); derr != nil {
			logger.Log.Error("Failed to remove job after employer update failed", "job_id", job.ID, "error", derr)
		}
		return nil, apperror.Internal(err)
	}

	return job, nil
}

func (uc *jobUsecase) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) List(ctx context.Context, filter domain.JobFilter, page, limit int, sort string) (*domain.JobPage, error) {
	jobSort, err := parseJobSort(sort)
	if err != nil {
		return nil, err
	}
	filter, err = normalizeJobFilter(filter)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = domain.DefaultJobPageSize
	}
	if limit > domain.MaxJobPageSize {
		limit = domain.MaxJobPageSize
	}

	items, total, err := uc.jobRepo.List(ctx, domain.JobQuery{
		Filter: filter,
		Sort:   jobSort,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if items == nil {
		items = []domain.Job{}
	}

	return &domain.JobPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		TotalCount: total,
	}, nil
}

var jobSortFields = map[string]bool{
	domain.JobSortCreatedAt: true,
	domain.JobSortSalary:    true,
	domain.JobSortTitle:     true,
	domain.JobSortExpiresAt: true,
}

// parseJobSort accepts a field name with an optional leading "-" for descending.
func parseJobSort(raw string) (domain.JobSort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.JobSort{Field: domain.JobSortCreatedAt, Desc: true}, nil
	}

	sort := domain.JobSort{Field: raw}
	if strings.HasPrefix(raw, "-") {
		sort = domain.JobSort{Field: raw[1:], Desc: true}
	}
	if !jobSortFields[sort.Field] {
		return domain.JobSort{}, apperror.BadRequest(fmt.Sprintf("Cannot sort by %q", sort.Field))
	}
	return sort, nil
}

func normalizeJobFilter(f domain.JobFilter) (domain.JobFilter, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Location = strings.TrimSpace(f.Location)
	f.Skills = normalizeSkills(f.Skills)

	switch domain.JobType(f.JobType) {
	case "", domain.JobTypeDaily, domain.JobTypeShortTerm, domain.JobTypePartTime:
	default:
		return f, apperror.BadRequest("jobType must be one of: daily, short-term, part-time")
	}
	switch domain.JobStatus(f.Status) {
	case "", domain.JobStatusOpen, domain.JobStatusInProgress, domain.JobStatusCompleted:
	default:
		return f, apperror.BadRequest("status must be one of: open, in-progress, completed")
	}
	if f.SalaryGTE != nil && f.SalaryLTE != nil && *f.SalaryGTE > *f.SalaryLTE {
		return f, apperror.BadRequest("salary[gte] must not exceed salary[lte]")
	}
	return f, nil
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ListByOwner returns the jobs recorded on the employer.
func (uc *jobUsecase) ListByOwner(ctx context.Context, employerID string) ([]domain.Job, error) {
	employer, err := uc.employerRepo.GetEmployer(ctx, employerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employer not found")
		}
		return nil, apperror.Internal(err)
	}
	if len(employer.CreatedJobs) == 0 {
		return []domain.Job{}, nil
	}

	jobs, err := uc.jobRepo.ListByIDs(ctx, employer.CreatedJobs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

// ListByPoster looks jobs up by their postedBy field. No jobs is an empty list.
func (uc *jobUsecase) ListByPoster(ctx context.Context, posterID string) ([]domain.Job, error) {
	jobs, err := uc.jobRepo.ListByPostedBy(ctx, posterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

func (uc *jobUsecase) ownedJob(ctx context.Context, id, employerID string) (*domain.Job, error) {
	job, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != employerID {
		uc.secLog.LogOwnershipDenied(ctx, employerID, "job", id)
		return nil, apperror.Forbidden("You do not own this job")
	}
	return job, nil
}

func (uc *jobUsecase) Update(ctx context.Context, id, employerID string, patch domain.JobPatch) (*domain.Job, error) {
	if err := validateInput(uc.validate, patch); err != nil {
		return nil, err
	}

	job, err := uc.ownedJob(ctx, id, employerID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return job, nil
	}
	if patch.SkillsRequired != nil {
		skills := normalizeSkills(*patch.SkillsRequired)
		patch.SkillsRequired = &skills
	}

	updated, err := uc.jobRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return updated, nil
}

func (uc *jobUsecase) Delete(ctx context.Context, id, employerID string) error {
	if _, err := uc.ownedJob(ctx, id, employerID); err != nil {
		return err
	}

	if err := uc.jobRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	// the job is already gone and listings skip missing ids
	if err := uc.employerRepo.RemoveCreatedJob(context.WithoutCancel(ctx), employerID, id); err != nil {
		logger.Log.Error("Failed to pull deleted job from employer", "job_id", id, "employer_id", employerID, "error", err)
	}
	return nil
}

func (uc *jobUsecase) ListApplicants(ctx context.Context, id, employerID string) ([]domain.ApplicantView, error) {
	job, err := uc.ownedJob(ctx, id, employerID)
	if err != nil {
		return nil, err
	}
	if len(job.Applicants) == 0 {
		return []domain.ApplicantView{}, nil
	}

	views, err := uc.seekerRepo.GetApplicantViews(ctx, job.Applicants)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if views == nil {
		views = []domain.ApplicantView{}
	}
	return views, nil
}

var applicantColumns = []string{
	"NAME", "EMAIL", "PHONE", "RESUME", "SKILLS", "EXPERIENCE", "EDUCATION", "PROFILE PICTURE",
}

// ExportApplicants renders ListApplicants as an xlsx workbook.
func (uc *jobUsecase) ExportApplicants(ctx context.Context, id, employerID string) ([]byte, string, error) {
	applicants, err := uc.ListApplicants(ctx, id, employerID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", apperror.Internal(err)
	}

	for i, col := range applicantColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicantColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, a := range applicants {
		row := []any{
			a.Name,
			a.Email,
			a.Phone,
			a.Resume,
			strings.Join(a.Skills, ", "),
			formatExperience(a.Experience),
			formatEducation(a.Education),
			a.ProfilePicture,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, "", apperror.Internal(err)
		}
	}

	for i := range applicantColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}

	filename := fmt.Sprintf("applicants_%s_%s.xlsx", id, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func formatExperience(entries []domain.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Company != "" {
			parts = append(parts, fmt.Sprintf("%s at %s", e.Title, e.Company))
		} else {
			parts = append(parts, e.Title)
		}
	}
	return strings.Join(parts, "; ")
}

func formatEducation(entries []domain.EducationEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Degree != "" {
			parts = append(parts, fmt.Sprintf("%s, %s", e.Degree, e.Institution))
		} else {
			parts = append(parts, e.Institution)
		}
	}
	return strings.Join(parts, "; ")
}
