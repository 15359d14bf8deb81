package dto

import (
	"time"

	"jobradar/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	ExternalID      string    `json:"external_id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	JobURL          string    `json:"job_url"`
	Description     string    `json:"description"`
	SalaryMin       *float64  `json:"salary_min"`
	SalaryMax       *float64  `json:"salary_max"`
	SalaryCurrency  string    `json:"salary_currency"`
	JobType         string    `json:"job_type"`
	ExperienceLevel string    `json:"experience_level"`
	RemoteType      string    `json:"remote_type"`
	CompanyType     string    `json:"company_type"`
	SkillsRequired  []string  `json:"skills_required"`
	Source          string    `json:"source"`
	PostedDate      string    `json:"posted_date"`
	CreatedAt       string    `json:"created_at"`
}

func NewJobResponse(l job.Listing) JobResponse {
	r := l.Record
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:              l.ID,
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
		CompanyType:     r.CompanyType,
		SkillsRequired:  skills,
		Source:          r.Source,
		PostedDate:      formatTime(r.PostedAt),
		CreatedAt:       formatTime(&l.CreatedAt),
	}
}

func NewJobResponses(items []job.Listing) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewJobResponse(it))
	}
	return out
}

type JobSearchResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
