package scoring

import (
	"math"

	"jobradar/internal/domain/job"
)

var companyGrowth = map[string]float64{
	job.CompanyStartup:     0.9,
	job.CompanyGrowthStage: 0.8,
	job.CompanyScaleUp:     0.7,
	job.CompanyEnterprise:  0.5,
}

var experienceGrowth = map[string]float64{
	job.ExperienceEntry:  0.4,
	job.ExperienceMid:    0.7,
	job.ExperienceSenior: 0.9,
	job.ExperienceLead:   0.95,
}

// GrowthSkills are the skills counted as career-accelerating.
var GrowthSkills = []string{"ai", "ml", "cloud", "kubernetes", "aws", "python", "go", "rust"}

var growthSkillSet = skillSet(GrowthSkills)

// Growth scores the career-growth potential of a listing, capped at 1.
//
// The skill density term is multiplied by 0.4 twice, so its effective weight
// is 0.16. Stored scores depend on that value.
func Growth(r job.Record) float64 {
	company, ok := companyGrowth[r.CompanyType]
	if !ok {
		company = 0.6
	}

	level, ok := experienceGrowth[r.ExperienceLevel]
	if !ok {
		level = 0.7
	}

	score := company*0.3 + growthSkillDensity(r.Skills)*0.4*0.4 + level*0.3
	return math.Min(1.0, score)
}

func growthSkillDensity(skills []string) float64 {
	matched := 0
	for s := range skillSet(skills) {
		if _, ok := growthSkillSet[s]; ok {
			matched++
		}
	}
	return float64(matched) / math.Max(float64(len(skills)), 1)
}
