package scoring

import "jobradar/internal/domain/job"

const (
	RecommendationHighly      = "highly_recommended"
	RecommendationRecommended = "recommended"
	RecommendationMaybe       = "maybe"

	salaryScoreReference = 150000
	unlistedSalaryScore  = 100000
)

type Recommendation struct {
	MatchScore      float64
	SalaryScore     float64
	GrowthPotential float64
	Label           string
	Confidence      float64
}

// Recommend combines match and growth scores for one listing and seeker.
// An unlisted salary is read as 100000 for every component here, including
// the match score.
func Recommend(r job.Record, p job.UserPreference) Recommendation {
	if r.SalaryMax == nil {
		v := float64(unlistedSalaryScore)
		r.SalaryMax = &v
	}
	match := Match(r, p)
	growth := Growth(r)
	return Recommendation{
		MatchScore:      match,
		SalaryScore:     SalaryScore(r),
		GrowthPotential: growth,
		Label:           RecommendationLabel(match),
		Confidence:      (match + growth) / 2,
	}
}

func RecommendationLabel(match float64) string {
	switch {
	case match > 0.7:
		return RecommendationHighly
	case match > 0.5:
		return RecommendationRecommended
	default:
		return RecommendationMaybe
	}
}

// SalaryScore is salary_max relative to 150000; it is not capped.
func SalaryScore(r job.Record) float64 {
	return r.SalaryMaxOr(unlistedSalaryScore) / salaryScoreReference
}
