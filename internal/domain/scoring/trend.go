package scoring

import (
	"sort"
	"strings"

	"jobradar/internal/domain/job"
)

const (
	TrendUp      = "up"
	TrendDown    = "down"
	TrendStable  = "stable"
	TrendUnknown = "unknown"

	trendUpAbove   = 0.15
	trendDownBelow = 0.05
)

type SkillTrend struct {
	Skill           string  `json:"skill"`
	Frequency       float64 `json:"frequency"`
	Trend           string  `json:"trend"`
	AvgSalaryImpact float64 `json:"avg_salary_impact"`
	Count           int     `json:"count"`
}

// Trend reports how often skill appears across the corpus and the mean
// salary_max of the listings that require it.
func Trend(skill string, corpus []job.Record) SkillTrend {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if len(corpus) == 0 {
		return SkillTrend{Skill: skill, Trend: TrendUnknown}
	}

	count := 0
	salarySum := 0.0
	for _, r := range corpus {
		if _, ok := skillSet(r.Skills)[skill]; !ok {
			continue
		}
		count++
		salarySum += r.SalaryMaxOr(defaultTrainingSalary)
	}

	freq := float64(count) / float64(len(corpus))
	avg := 0.0
	if count > 0 {
		avg = salarySum / float64(count)
	}

	return SkillTrend{
		Skill:           skill,
		Frequency:       freq,
		Trend:           trendDirection(freq),
		AvgSalaryImpact: avg,
		Count:           count,
	}
}

func trendDirection(freq float64) string {
	switch {
	case freq > trendUpAbove:
		return TrendUp
	case freq < trendDownBelow:
		return TrendDown
	default:
		return TrendStable
	}
}

// TopSkills computes trends for every skill in the corpus, most frequent first.
// n <= 0 returns all of them.
func TopSkills(corpus []job.Record, n int) []SkillTrend {
	if len(corpus) == 0 {
		return []SkillTrend{}
	}

	seen := map[string]struct{}{}
	for _, r := range corpus {
		for s := range skillSet(r.Skills) {
			seen[s] = struct{}{}
		}
	}

	out := make([]SkillTrend, 0, len(seen))
	for s := range seen {
		out = append(out, Trend(s, corpus))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
