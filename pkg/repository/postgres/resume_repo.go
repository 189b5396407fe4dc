package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/hr/ingest/pkg/resume"
)

// ResumeRepository хранит резюме, статус разбора и извлечённые разделы.
type ResumeRepository struct {
	pool *pgxpool.Pool
}

func NewResumeRepository(pool *pgxpool.Pool) *ResumeRepository {
	return &ResumeRepository{pool: pool}
}

var _ resume.Repository = (*ResumeRepository)(nil)

const metaColumns = `id, owner_id, filename, mime_type, size_bytes, storage_key,
	processing_status, error_message, last_analyzed_at, created_at, updated_at`

func scanMeta(row pgx.Row) (resume.Resume, error) {
	var m resume.Resume
	var status string
	var owner *uuid.UUID
	err := row.Scan(&m.ID, &owner, &m.Filename, &m.MimeType, &m.Size, &m.StorageKey,
		&status, &m.ErrorMessage, &m.LastAnalyzedAt, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.Resume{}, resume.ErrNotFound
	}
	if err != nil {
		return resume.Resume{}, err
	}
	if owner != nil {
		m.OwnerID = *owner
	}
	m.Status = resume.ProcessingStatus(status)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

func collectMeta(rows pgx.Rows) ([]resume.Resume, error) {
	defer rows.Close()
	res := []resume.Resume{}
	for rows.Next() {
		m, err := scanMeta(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func pageDefaults(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Create inserts a new record in Pending state.
func (r *ResumeRepository) Create(ctx context.Context, rs resume.Resume) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	if rs.CreatedAt.IsZero() {
		rs.CreatedAt = time.Now().UTC()
	}
	if rs.Status == "" {
		rs.Status = resume.StatusPending
	}
	var owner *uuid.UUID
	if rs.OwnerID != uuid.Nil {
		owner = &rs.OwnerID
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO resumes (id, owner_id, filename, mime_type, size_bytes, storage_key, processing_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
`, rs.ID, owner, rs.Filename, rs.MimeType, rs.Size, rs.StorageKey, string(rs.Status), rs.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *ResumeRepository) GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `SELECT `+metaColumns+` FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID))
}

func (r *ResumeRepository) GetMetaAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `SELECT `+metaColumns+` FROM resumes WHERE id = $1`, id))
}

func (r *ResumeRepository) LatestForOwner(ctx context.Context, ownerID uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
SELECT `+metaColumns+` FROM resumes WHERE owner_id = $1
ORDER BY created_at DESC LIMIT 1`, ownerID))
}

func (r *ResumeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]resume.Resume, error) {
	limit, offset = pageDefaults(limit, offset)
	rows, err := r.pool.Query(ctx, `
SELECT `+metaColumns+` FROM resumes WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return collectMeta(rows)
}

func (r *ResumeRepository) ListAll(ctx context.Context, limit, offset int) ([]resume.Resume, error) {
	limit, offset = pageDefaults(limit, offset)
	rows, err := r.pool.Query(ctx, `
SELECT `+metaColumns+` FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return collectMeta(rows)
}

// ListBySkill returns resumes having any skill equal (case-insensitively) to
// one of variants. A nil ownerID searches every owner.
func (r *ResumeRepository) ListBySkill(ctx context.Context, ownerID *uuid.UUID, variants []string, limit, offset int) ([]resume.Resume, error) {
	limit, offset = pageDefaults(limit, offset)
	rows, err := r.pool.Query(ctx, `
SELECT `+metaColumns+` FROM resumes r
WHERE ($1::uuid IS NULL OR r.owner_id = $1)
  AND EXISTS (
	SELECT 1 FROM resume_skills s
	WHERE s.resume_id = r.id AND lower(s.skill_name) = ANY($2)
  )
ORDER BY r.created_at DESC
LIMIT $3 OFFSET $4`, ownerID, variants, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resumes by skill: %w", err)
	}
	return collectMeta(rows)
}

// SetStatus records a status transition. Completed also stamps
// last_analyzed_at; every write stamps updated_at.
func (r *ResumeRepository) SetStatus(ctx context.Context, id uuid.UUID, status resume.ProcessingStatus, detail *string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE resumes SET
	processing_status = $2,
	error_message = $3,
	last_analyzed_at = CASE WHEN $4 THEN now() ELSE last_analyzed_at END,
	updated_at = now()
WHERE id = $1`, id, string(status), detail, status == resume.StatusCompleted)
	if err != nil {
		return fmt.Errorf("set status %s: %w", status, err)
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}
	return nil
}

// Persist writes the profile in one transaction. Contact and summary columns
// keep their previous value when the new one is absent; section rows are
// appended after any existing ones.
func (r *ResumeRepository) Persist(ctx context.Context, id uuid.UUID, p resume.ExtractedProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
UPDATE resumes SET
	full_name            = COALESCE($2, full_name),
	email                = COALESCE($3, email),
	phone                = COALESCE($4, phone),
	location             = COALESCE($5, location),
	linkedin_url         = COALESCE($6, linkedin_url),
	github_url           = COALESCE($7, github_url),
	portfolio_url        = COALESCE($8, portfolio_url),
	professional_summary = COALESCE($9, professional_summary),
	raw_text             = $10,
	updated_at           = now()
WHERE id = $1`, id, p.FullName, p.Email, p.Phone, p.Location,
		p.LinkedInURL, p.GitHubURL, p.PortfolioURL, p.Summary, p.RawText)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return resume.ErrNotFound
	}

	var skillBase, expBase, eduBase, certBase, projBase int
	err = tx.QueryRow(ctx, `
SELECT
	(SELECT COALESCE(MAX(display_order) + 1, 0) FROM resume_skills WHERE resume_id = $1),
	(SELECT COALESCE(MAX(display_order) + 1, 0) FROM resume_experiences WHERE resume_id = $1),
	(SELECT COALESCE(MAX(display_order) + 1, 0) FROM resume_education WHERE resume_id = $1),
	(SELECT COALESCE(MAX(display_order) + 1, 0) FROM resume_certifications WHERE resume_id = $1),
	(SELECT COALESCE(MAX(display_order) + 1, 0) FROM resume_projects WHERE resume_id = $1)
`, id).Scan(&skillBase, &expBase, &eduBase, &certBase, &projBase)
	if err != nil {
		return fmt.Errorf("section offsets: %w", err)
	}

	b := &pgx.Batch{}
	for i, s := range p.Skills {
		b.Queue(`INSERT INTO resume_skills (resume_id, skill_name, display_order) VALUES ($1, $2, $3)`,
			id, s, skillBase+i)
	}
	for i, e := range p.Experiences {
		b.Queue(`
INSERT INTO resume_experiences
	(resume_id, company_name, job_title, location, start_date, end_date, is_current, description, raw_text, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, e.CompanyName, e.JobTitle, e.Location, e.StartDate, e.EndDate, e.IsCurrent, e.Description, e.RawText, expBase+i)
	}
	for i, e := range p.Education {
		b.Queue(`
INSERT INTO resume_education
	(resume_id, institution_name, degree_type, field_of_study, start_date, end_date, is_current, raw_text, display_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, e.InstitutionName, e.DegreeType, e.FieldOfStudy, e.StartDate, e.EndDate, e.IsCurrent, e.RawText, eduBase+i)
	}
	for i, c := range p.Certifications {
		b.Queue(`
INSERT INTO resume_certifications (resume_id, name, issuing_organization, issue_date, raw_text, display_order)
VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.Name, c.IssuingOrganization, c.IssueDate, c.RawText, certBase+i)
	}
	for i, pr := range p.Projects {
		b.Queue(`
INSERT INTO resume_projects (resume_id, name, description, raw_text, display_order)
VALUES ($1, $2, $3, $4, $5)`,
			id, pr.Name, pr.Description, pr.RawText, projBase+i)
	}
	if b.Len() > 0 {
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return fmt.Errorf("insert sections: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ClearDerived drops every section row of a resume, leaving the record itself.
func (r *ResumeRepository) ClearDerived(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range []string{
		"resume_skills", "resume_experiences", "resume_education", "resume_certifications", "resume_projects",
	} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE resume_id = $1`, id); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

// GetComplete loads the record with its contact fields and every section.
func (r *ResumeRepository) GetComplete(ctx context.Context, id uuid.UUID) (resume.Complete, error) {
	var c resume.Complete
	var status string
	var owner *uuid.UUID
	err := r.pool.QueryRow(ctx, `
SELECT `+metaColumns+`,
	full_name, email, phone, location, linkedin_url, github_url, portfolio_url,
	professional_summary, raw_text
FROM resumes WHERE id = $1`, id).Scan(
		&c.ID, &owner, &c.Filename, &c.MimeType, &c.Size, &c.StorageKey,
		&status, &c.ErrorMessage, &c.LastAnalyzedAt, &c.CreatedAt, &c.UpdatedAt,
		&c.FullName, &c.Email, &c.Phone, &c.Location, &c.LinkedInURL, &c.GitHubURL, &c.PortfolioURL,
		&c.Summary, &c.RawText)
	if errors.Is(err, pgx.ErrNoRows) {
		return resume.Complete{}, resume.ErrNotFound
	}
	if err != nil {
		return resume.Complete{}, fmt.Errorf("load resume: %w", err)
	}
	if owner != nil {
		c.OwnerID = *owner
	}
	c.Status = resume.ProcessingStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()

	if c.Skills, err = r.skills(ctx, id); err != nil {
		return resume.Complete{}, err
	}
	if c.Experiences, err = r.experiences(ctx, id); err != nil {
		return resume.Complete{}, err
	}
	if c.Education, err = r.education(ctx, id); err != nil {
		return resume.Complete{}, err
	}
	if c.Certifications, err = r.certifications(ctx, id); err != nil {
		return resume.Complete{}, err
	}
	if c.Projects, err = r.projects(ctx, id); err != nil {
		return resume.Complete{}, err
	}
	return c, nil
}

func (r *ResumeRepository) skills(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
SELECT skill_name FROM resume_skills WHERE resume_id = $1 ORDER BY display_order, id`, id)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	return out, nil
}

func (r *ResumeRepository) experiences(ctx context.Context, id uuid.UUID) ([]resume.ExperienceEntry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT company_name, job_title, location, start_date, end_date, is_current, description, raw_text
FROM resume_experiences WHERE resume_id = $1 ORDER BY display_order, id`, id)
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (resume.ExperienceEntry, error) {
		var e resume.ExperienceEntry
		err := row.Scan(&e.CompanyName, &e.JobTitle, &e.Location, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description, &e.RawText)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	return out, nil
}

func (r *ResumeRepository) education(ctx context.Context, id uuid.UUID) ([]resume.EducationEntry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT institution_name, degree_type, field_of_study, start_date, end_date, is_current, raw_text
FROM resume_education WHERE resume_id = $1 ORDER BY display_order, id`, id)
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (resume.EducationEntry, error) {
		var e resume.EducationEntry
		err := row.Scan(&e.InstitutionName, &e.DegreeType, &e.FieldOfStudy, &e.StartDate, &e.EndDate, &e.IsCurrent, &e.RawText)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	return out, nil
}

func (r *ResumeRepository) certifications(ctx context.Context, id uuid.UUID) ([]resume.CertificationEntry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT name, issuing_organization, issue_date, raw_text
FROM resume_certifications WHERE resume_id = $1 ORDER BY display_order, id`, id)
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (resume.CertificationEntry, error) {
		var c resume.CertificationEntry
		err := row.Scan(&c.Name, &c.IssuingOrganization, &c.IssueDate, &c.RawText)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}
	return out, nil
}

func (r *ResumeRepository) projects(ctx context.Context, id uuid.UUID) ([]resume.ProjectEntry, error) {
	rows, err := r.pool.Query(ctx, `
SELECT name, description, raw_text
FROM resume_projects WHERE resume_id = $1 ORDER BY display_order, id`, id)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (resume.ProjectEntry, error) {
		var p resume.ProjectEntry
		err := row.Scan(&p.Name, &p.Description, &p.RawText)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	return out, nil
}

// DeleteForOwner removes the record (sections cascade) and returns its meta
// so the caller can drop the stored file.
func (r *ResumeRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `
DELETE FROM resumes WHERE id = $1 AND owner_id = $2 RETURNING `+metaColumns, id, ownerID))
}

func (r *ResumeRepository) DeleteAny(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	return scanMeta(r.pool.QueryRow(ctx, `DELETE FROM resumes WHERE id = $1 RETURNING `+metaColumns, id))
}
