package scoring

import (
	"strings"

	"jobradar/internal/domain/job"
)

const (
	weightExperience = 0.25
	weightSkills     = 0.30
	weightSalary     = 0.20
	weightLocation   = 0.15
	weightRemote     = 0.10

	// A listing without a salary is scored as if it paid this much.
	unlistedMatchSalary = 150000
)

// Match scores how well a listing fits a job seeker, in [0, 1].
func Match(r job.Record, p job.UserPreference) float64 {
	score := experienceComponent(r, p)*weightExperience +
		skillsComponent(r, p)*weightSkills +
		salaryComponent(r, p)*weightSalary +
		locationComponent(r, p)*weightLocation +
		remoteComponent(r, p)*weightRemote

	return clamp01(score)
}

func experienceComponent(r job.Record, p job.UserPreference) float64 {
	if p.ExperienceLevel == r.ExperienceLevel {
		return 1.0
	}
	return 0.6
}

// skillsComponent is the Jaccard index of both skill sets, or 0.5 when either is empty.
func skillsComponent(r job.Record, p job.UserPreference) float64 {
	userSkills := skillSet(p.Skills)
	jobSkills := skillSet(r.Skills)
	if len(userSkills) == 0 || len(jobSkills) == 0 {
		return 0.5
	}

	inter := 0
	for s := range userSkills {
		if _, ok := jobSkills[s]; ok {
			inter++
		}
	}
	union := len(userSkills) + len(jobSkills) - inter
	return float64(inter) / float64(union)
}

func salaryComponent(r job.Record, p job.UserPreference) float64 {
	salaryMax := r.SalaryMaxOr(unlistedMatchSalary)
	if salaryMax >= p.SalaryMin || p.SalaryMin <= 0 {
		return 1.0
	}
	return salaryMax / p.SalaryMin
}

// locationComponent treats an empty preferred location as matching anywhere.
func locationComponent(r job.Record, p job.UserPreference) float64 {
	if strings.Contains(strings.ToLower(r.Location), strings.ToLower(p.Location)) {
		return 1.0
	}
	return 0.3
}

func remoteComponent(r job.Record, p job.UserPreference) float64 {
	if p.RemotePreference == job.RemoteAny || strings.Contains(r.RemoteType, p.RemotePreference) {
		return 1.0
	}
	return 0.3
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
