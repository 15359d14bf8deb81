package scoring

import (
	"math"
	"sort"
	"strings"

	"jobradar/internal/domain/job"
)

// Normalize canonicalizes a raw listing. It never fails: missing or malformed
// fields degrade to defaults.
//
// Unrecognized experience levels are kept verbatim while unrecognized remote
// types collapse to on-site. Callers rely on both behaviors.
func Normalize(raw job.RawJob) job.Record {
	return job.Record{
		ExternalID:      strings.TrimSpace(raw.ExternalID),
		Title:           strings.TrimSpace(raw.Title),
		Company:         strings.TrimSpace(raw.Company),
		Location:        strings.TrimSpace(raw.Location),
		JobURL:          strings.TrimSpace(raw.JobURL),
		Description:     raw.Description,
		SalaryMin:       sanitizeSalary(raw.SalaryMin),
		SalaryMax:       sanitizeSalary(raw.SalaryMax),
		SalaryCurrency:  normalizeCurrency(raw.SalaryCurrency),
		JobType:         strings.ToLower(strings.TrimSpace(raw.JobType)),
		ExperienceLevel: NormalizeExperience(raw.ExperienceLevel),
		RemoteType:      NormalizeRemote(raw.RemoteType),
		Skills:          NormalizeSkills(raw.Skills),
		CompanyType:     normalizeCompanyType(raw.CompanyType),
		Source:          strings.ToLower(strings.TrimSpace(raw.Source)),
		PostedAt:        raw.PostedAt,
	}
}

// NormalizeExperience maps free-form seniority text onto entry, mid or senior.
// An empty value means mid.
func NormalizeExperience(level string) string {
	if strings.TrimSpace(level) == "" {
		return job.ExperienceMid
	}
	s := strings.ToLower(level)
	switch {
	case containsAny(s, "entry", "junior", "graduate"):
		return job.ExperienceEntry
	case containsAny(s, "mid", "intermediate"):
		return job.ExperienceMid
	case containsAny(s, "senior", "lead", "principal"):
		return job.ExperienceSenior
	}
	return level
}

func NormalizeRemote(remote string) string {
	s := strings.ToLower(remote)
	switch {
	case strings.Contains(s, "fully"):
		return job.RemoteFully
	case strings.Contains(s, "hybrid"):
		return job.RemoteHybrid
	}
	return job.RemoteOnSite
}

// NormalizeSkills returns the trimmed, lower-cased, de-duplicated skill set in
// sorted order. The result is never nil.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, entry := range skills {
		// Skills are stored comma-joined, so "python, sql" is two skills.
		for _, s := range strings.Split(entry, ",") {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func normalizeCompanyType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if t == "" {
		return job.CompanyGrowthStage
	}
	return t
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return job.DefaultCurrency
	}
	return c
}

func sanitizeSalary(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func skillSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		out[strings.ToLower(s)] = struct{}{}
	}
	return out
}
