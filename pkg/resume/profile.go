package resume

import "time"

// ExtractedProfile хранит структурированное представление резюме.
// A nil pointer means the field was not found, which is distinct from found and empty.
type ExtractedProfile struct {
	FullName     *string `json:"fullName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Location     *string `json:"location"`
	LinkedInURL  *string `json:"linkedinUrl"`
	GitHubURL    *string `json:"githubUrl"`
	PortfolioURL *string `json:"portfolioUrl"`
	Summary      *string `json:"professionalSummary"`

	Skills         []string             `json:"skills"`
	Experiences    []ExperienceEntry    `json:"experiences"`
	Education      []EducationEntry     `json:"education"`
	Certifications []CertificationEntry `json:"certifications"`
	Projects       []ProjectEntry       `json:"projects"`

	RawText string `json:"rawText"`
}

// NewProfile returns a profile with every optional absent and every list empty.
func NewProfile(raw string) ExtractedProfile {
	return ExtractedProfile{
		Skills:         []string{},
		Experiences:    []ExperienceEntry{},
		Education:      []EducationEntry{},
		Certifications: []CertificationEntry{},
		Projects:       []ProjectEntry{},
		RawText:        raw,
	}
}

type ExperienceEntry struct {
	CompanyName *string    `json:"companyName"`
	JobTitle    *string    `json:"jobTitle"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsCurrent   bool       `json:"isCurrent"`
	Description *string    `json:"description"`
	RawText     string     `json:"rawText"`
}

type EducationEntry struct {
	InstitutionName *string    `json:"institutionName"`
	DegreeType      *string    `json:"degreeType"`
	FieldOfStudy    *string    `json:"fieldOfStudy"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsCurrent       bool       `json:"isCurrent"`
	RawText         string     `json:"rawText"`
}

type CertificationEntry struct {
	Name                *string    `json:"name"`
	IssuingOrganization *string    `json:"issuingOrganization"`
	IssueDate           *time.Time `json:"issueDate"`
	RawText             string     `json:"rawText"`
}

type ProjectEntry struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	RawText     string  `json:"rawText"`
}

// ParseOutcome holds either a profile or a classified error, never both.
type ParseOutcome struct {
	Profile *ExtractedProfile
	Err     *ParseError
}

func Succeeded(p ExtractedProfile) ParseOutcome {
	return ParseOutcome{Profile: &p}
}

func Failed(err error) ParseOutcome {
	return ParseOutcome{Err: Classify(err)}
}

func (o ParseOutcome) OK() bool { return o.Err == nil && o.Profile != nil }

// StrPtr returns nil for an empty string.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
