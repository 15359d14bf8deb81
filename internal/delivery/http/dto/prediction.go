package dto

import (
	"jobradar/internal/domain/job"

	"github.com/google/uuid"
)

type PredictSalaryRequest struct {
	JobID string `json:"job_id"`
}

type SalaryPredictionResponse struct {
	JobID              uuid.UUID `json:"job_id"`
	PredictedSalaryMin float64   `json:"predicted_salary_min"`
	PredictedSalaryMax float64   `json:"predicted_salary_max"`
	Currency           string    `json:"currency"`
	ModelMode          string    `json:"model_mode"`
}

type RecommendationRequest struct {
	JobID           string                 `json:"job_id"`
	UserPreferences *UserPreferencePayload `json:"user_preferences"`
}

type RecommendationResponse struct {
	JobID            uuid.UUID `json:"job_id"`
	MatchScore       float64   `json:"match_score"`
	SalaryScore      float64   `json:"salary_score"`
	GrowthPotential  float64   `json:"growth_potential"`
	Recommendation   string    `json:"recommendation"`
	Confidence       float64   `json:"confidence"`
	PreferenceSource string    `json:"preference_source"`
}

// UserPreferencePayload is the wire shape of a seeker profile. An absent
// salary_min means 50000.
type UserPreferencePayload struct {
	ExperienceLevel  string   `json:"experience_level"`
	Skills           []string `json:"skills"`
	SalaryMin        *float64 `json:"salary_min"`
	Location         string   `json:"location"`
	RemotePreference string   `json:"remote_preference"`
}

func (p UserPreferencePayload) ToDomain() job.UserPreference {
	salaryMin := float64(job.DefaultPreferenceSalaryMin)
	if p.SalaryMin != nil {
		salaryMin = *p.SalaryMin
	}
	return job.UserPreference{
		ExperienceLevel:  p.ExperienceLevel,
		Skills:           p.Skills,
		SalaryMin:        salaryMin,
		Location:         p.Location,
		RemotePreference: p.RemotePreference,
	}
}

type UserPreferenceResponse struct {
	ExperienceLevel  string   `json:"experience_level"`
	Skills           []string `json:"skills"`
	SalaryMin        float64  `json:"salary_min"`
	Location         string   `json:"location"`
	RemotePreference string   `json:"remote_preference"`
}

func NewUserPreferenceResponse(p job.UserPreference) UserPreferenceResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserPreferenceResponse{
		ExperienceLevel:  p.ExperienceLevel,
		Skills:           skills,
		SalaryMin:        p.SalaryMin,
		Location:         p.Location,
		RemotePreference: p.RemotePreference,
	}
}
