package resume

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when the resume record does not exist
// (or is not visible to the caller).
var ErrNotFound = errors.New("resume not found")

// Resume хранит метаданные загруженного файла и текущий статус разбора.
type Resume struct {
	ID             uuid.UUID        `json:"id"`
	OwnerID        uuid.UUID        `json:"ownerId,omitempty"`
	Filename       string           `json:"filename"`
	MimeType       string           `json:"mimeType"`
	Size           int64            `json:"size"`
	StorageKey     string           `json:"storageKey,omitempty"`
	Status         ProcessingStatus `json:"processingStatus"`
	ErrorMessage   *string          `json:"errorMessage,omitempty"`
	LastAnalyzedAt *time.Time       `json:"lastAnalyzedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Complete is a resume record together with everything extracted from it.
type Complete struct {
	Resume
	FullName       *string              `json:"fullName"`
	Email          *string              `json:"email"`
	Phone          *string              `json:"phone"`
	Location       *string              `json:"location"`
	LinkedInURL    *string              `json:"linkedinUrl"`
	GitHubURL      *string              `json:"githubUrl"`
	PortfolioURL   *string              `json:"portfolioUrl"`
	Summary        *string              `json:"professionalSummary"`
	RawText        *string              `json:"rawText,omitempty"`
	Skills         []string             `json:"skills"`
	Experiences    []ExperienceEntry    `json:"experiences"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	Projects       []ProjectEntry       `json:"projects"`
}

// StatusStore records ingestion status transitions for a resume.
type StatusStore interface {
	SetStatus(ctx context.Context, id uuid.UUID, status ProcessingStatus, detail *string) error
}

// ProfileStore persists an extracted profile atomically against its resume record.
// Derived rows are appended; callers that want a clean slate call ClearDerived first.
type ProfileStore interface {
	Persist(ctx context.Context, id uuid.UUID, p ExtractedProfile) error
}

// Fetcher retrieves the source bytes of an uploaded file.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// FileStore is a Fetcher that can also accept and drop files.
type FileStore interface {
	Fetcher
	Save(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Repository описывает доступ к резюме.
type Repository interface {
	StatusStore
	ProfileStore

	Create(ctx context.Context, r Resume) error
	// meta
	GetMetaForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	GetMetaAny(ctx context.Context, id uuid.UUID) (Resume, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Resume, error)
	ListAll(ctx context.Context, limit, offset int) ([]Resume, error)
	ListBySkill(ctx context.Context, ownerID *uuid.UUID, variants []string, limit, offset int) ([]Resume, error)
	LatestForOwner(ctx context.Context, ownerID uuid.UUID) (Resume, error)
	// full record with child sections
	GetComplete(ctx context.Context, id uuid.UUID) (Complete, error)
	// removes skills/experience/education/certification/project rows
	ClearDerived(ctx context.Context, id uuid.UUID) error
	// delete (returns deleted meta for file cleanup)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Resume, error)
	DeleteAny(ctx context.Context, id uuid.UUID) (Resume, error)
}
