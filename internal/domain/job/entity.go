package job

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	ExperienceEntry  = "entry"
	ExperienceMid    = "mid"
	ExperienceSenior = "senior"
	ExperienceLead   = "lead"
)

const (
	RemoteFully  = "fully-remote"
	RemoteHybrid = "hybrid"
	RemoteOnSite = "on-site"
	RemoteAny    = "any"
)

const (
	CompanyStartup     = "startup"
	CompanyGrowthStage = "growth-stage"
	CompanyScaleUp     = "scale-up"
	CompanyEnterprise  = "enterprise"
)

const DefaultCurrency = "USD"

// RawJob is a listing as delivered by a source, before normalization.
type RawJob struct {
	ExternalID      string     `json:"external_id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	JobURL          string     `json:"job_url"`
	Description     string     `json:"description"`
	SalaryMin       *float64   `json:"salary_min,omitempty"`
	SalaryMax       *float64   `json:"salary_max,omitempty"`
	SalaryCurrency  string     `json:"salary_currency,omitempty"`
	JobType         string     `json:"job_type"`
	ExperienceLevel string     `json:"experience_level"`
	RemoteType      string     `json:"remote_type"`
	Skills          []string   `json:"skills_required"`
	CompanyType     string     `json:"company_type,omitempty"`
	Source          string     `json:"source"`
	PostedAt        *time.Time `json:"posted_date,omitempty"`
}

// Record is the normalized listing every scorer consumes.
type Record struct {
	ExternalID      string
	Title           string
	Company         string
	Location        string
	JobURL          string
	Description     string
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryCurrency  string
	JobType         string
	ExperienceLevel string
	RemoteType      string
	Skills          []string
	CompanyType     string
	Source          string
	PostedAt        *time.Time
}

// Raw converts the record back to its source shape.
func (r Record) Raw() RawJob {
	skills := make([]string, len(r.Skills))
	copy(skills, r.Skills)
	return RawJob{
		ExternalID:      r.ExternalID,
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		JobURL:          r.JobURL,
		Description:     r.Description,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		SalaryCurrency:  r.SalaryCurrency,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		RemoteType:      r.RemoteType,
		Skills:          skills,
		CompanyType:     r.CompanyType,
		Source:          r.Source,
		PostedAt:        r.PostedAt,
	}
}

// SalaryMaxOr returns the listed upper salary, or def when none is listed.
func (r Record) SalaryMaxOr(def float64) float64 {
	if r.SalaryMax == nil {
		return def
	}
	return *r.SalaryMax
}

// Key identifies a record across ingestion runs: the source's external id
// when present, else a digest of the identifying fields.
func (r Record) Key() string {
	if id := strings.TrimSpace(r.ExternalID); id != "" {
		return id
	}
	h := sha256.Sum256([]byte(strings.ToLower(strings.Join([]string{r.Source, r.JobURL, r.Title, r.Company, r.Location}, "|"))))
	return r.Source + "_" + hex.EncodeToString(h[:8])
}

// Listing is a persisted record.
type Listing struct {
	ID        uuid.UUID
	Record    Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserPreference struct {
	ExperienceLevel  string   `json:"experience_level"`
	Skills           []string `json:"skills"`
	SalaryMin        float64  `json:"salary_min"`
	Location         string   `json:"location"`
	RemotePreference string   `json:"remote_preference"`
}

const (
	DefaultPreferenceSalaryMin = 50000
	FallbackSalaryMin          = 60000
)

// DefaultPreference is used when a caller supplies no preferences at all.
func DefaultPreference() UserPreference {
	return UserPreference{
		ExperienceLevel:  ExperienceMid,
		Skills:           []string{},
		SalaryMin:        FallbackSalaryMin,
		Location:         "",
		RemotePreference: RemoteAny,
	}
}

// WithDefaults fills unset categorical fields.
func (p UserPreference) WithDefaults() UserPreference {
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceMid
	}
	if p.RemotePreference == "" {
		p.RemotePreference = RemoteAny
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p
}

type StoredPreference struct {
	UserID     string
	Preference UserPreference
	SavedJobs  []uuid.UUID
	UpdatedAt  time.Time
}

// SkillStat is the persisted aggregate for one skill.
type SkillStat struct {
	SkillName       string
	Frequency       float64
	Count           int
	AvgSalaryImpact float64
	TrendDirection  string
	UpdatedAt       time.Time
}

// SearchFilter narrows a listing search.
type SearchFilter struct {
	Keyword         string
	ExperienceLevel string
	RemoteType      string
	SalaryMin       *float64
	Location        string
	Limit           int
	Offset          int
}

type CompanyCount struct {
	Name  string
	Count int
}

type Statistics struct {
	TotalJobs              int
	AvgSalary              float64
	TopCompanies           []CompanyCount
	ExperienceDistribution map[string]int
	AvgSalaryByExperience  map[string]float64
	RemotePercentage       float64
	PostedLastWeek         int
	PostedPriorWeek        int
}
