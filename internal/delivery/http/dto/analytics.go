package dto

import (
	"jobradar/internal/domain/job"
	"jobradar/internal/usecase"
)

type CompanyCountResponse struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type SkillStatResponse struct {
	Skill           string  `json:"skill"`
	Frequency       float64 `json:"frequency"`
	Count           int     `json:"count"`
	AvgSalaryImpact float64 `json:"avg_salary_impact"`
	Trend           string  `json:"trend"`
}

type DashboardResponse struct {
	TotalJobs             int                    `json:"total_jobs"`
	AvgSalary             float64                `json:"avg_salary"`
	TopCompanies          []CompanyCountResponse `json:"top_companies"`
	TopSkills             []SkillStatResponse    `json:"top_skills"`
	AvgSalaryByExperience map[string]float64     `json:"avg_salary_by_experience"`
	RemotePercentage      float64                `json:"remote_percentage"`
	GrowthRate            float64                `json:"growth_rate"`
}

func NewDashboardResponse(d usecase.Dashboard) DashboardResponse {
	skills := make([]SkillStatResponse, 0, len(d.TopSkills))
	for _, s := range d.TopSkills {
		skills = append(skills, SkillStatResponse{
			Skill:           s.SkillName,
			Frequency:       s.Frequency,
			Count:           s.Count,
			AvgSalaryImpact: s.AvgSalaryImpact,
			Trend:           s.TrendDirection,
		})
	}
	bySalary := d.AvgSalaryByExperience
	if bySalary == nil {
		bySalary = map[string]float64{}
	}
	return DashboardResponse{
		TotalJobs:             d.TotalJobs,
		AvgSalary:             d.AvgSalary,
		TopCompanies:          companies(d.TopCompanies),
		TopSkills:             skills,
		AvgSalaryByExperience: bySalary,
		RemotePercentage:      d.RemotePercentage,
		GrowthRate:            d.GrowthRate,
	}
}

type DetailedStatsResponse struct {
	TotalJobs              int                    `json:"total_jobs"`
	AvgSalary              float64                `json:"avg_salary"`
	TopCompanies           []CompanyCountResponse `json:"top_companies"`
	ExperienceDistribution map[string]int         `json:"experience_distribution"`
	AvgSalaryByExperience  map[string]float64     `json:"avg_salary_by_experience"`
	RemotePercentage       float64                `json:"remote_percentage"`
	PostedLastWeek         int                    `json:"posted_last_week"`
	PostedPriorWeek        int                    `json:"posted_prior_week"`
	ModelMode              string                 `json:"model_mode"`
	ModelTrainedAt         string                 `json:"model_trained_at,omitempty"`
}

func NewDetailedStatsResponse(s usecase.DetailedStats) DetailedStatsResponse {
	return DetailedStatsResponse{
		TotalJobs:              s.TotalJobs,
		AvgSalary:              s.AvgSalary,
		TopCompanies:           companies(s.TopCompanies),
		ExperienceDistribution: s.ExperienceDistribution,
		AvgSalaryByExperience:  s.AvgSalaryByExperience,
		RemotePercentage:       s.RemotePercentage,
		PostedLastWeek:         s.PostedLastWeek,
		PostedPriorWeek:        s.PostedPriorWeek,
		ModelMode:              s.ModelMode,
		ModelTrainedAt:         formatTime(s.ModelTrainedAt),
	}
}

func companies(in []job.CompanyCount) []CompanyCountResponse {
	out := make([]CompanyCountResponse, 0, len(in))
	for _, c := range in {
		out = append(out, CompanyCountResponse{Company: c.Name, Count: c.Count})
	}
	return out
}
