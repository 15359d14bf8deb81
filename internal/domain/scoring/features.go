package scoring

import (
	"strings"

	"jobradar/internal/domain/job"
)

const featureCount = 5

// Features is the salary model input: experience, skill count, remote bonus,
// company tier and location tier, in that order.
type Features [featureCount]float64

var featureNames = [featureCount]string{
	"experience_level_encoded",
	"skills_count",
	"remote_type_bonus",
	"company_tier",
	"location_tier",
}

var experienceEncoding = map[string]float64{
	job.ExperienceEntry:  0.3,
	job.ExperienceMid:    0.6,
	job.ExperienceSenior: 0.9,
	job.ExperienceLead:   1.0,
}

var eliteEmployers = []string{"google", "amazon", "apple", "facebook", "meta", "microsoft", "netflix", "tesla"}

var corporateSuffixes = []string{"inc", "corp", "llc", "inc."}

var tier1Cities = []string{"san francisco", "new york", "seattle", "boston", "los angeles"}

var tier2Cities = []string{"chicago", "denver", "austin", "atlanta", "miami"}

func ExtractFeatures(r job.Record) Features {
	return Features{
		encodeExperience(r.ExperienceLevel),
		float64(len(r.Skills)),
		remoteBonus(r.RemoteType),
		companyTier(r.Company),
		locationTier(r.Location),
	}
}

func encodeExperience(level string) float64 {
	if v, ok := experienceEncoding[strings.ToLower(level)]; ok {
		return v
	}
	return 0.6
}

func remoteBonus(remote string) float64 {
	if remote == job.RemoteFully {
		return 1.15
	}
	return 1.0
}

func companyTier(company string) float64 {
	c := strings.ToLower(company)
	if containsAny(c, eliteEmployers...) {
		return 0.95
	}
	if containsAny(c, corporateSuffixes...) {
		return 0.7
	}
	return 0.5
}

func locationTier(location string) float64 {
	l := strings.ToLower(location)
	if containsAny(l, tier1Cities...) {
		return 1.0
	}
	if containsAny(l, tier2Cities...) {
		return 0.8
	}
	return 0.6
}
