package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"jobradar/internal/infrastructure/cache"
)

type jobSearchCacheKeyInput struct {
	Keyword         string   `json:"keyword"`
	ExperienceLevel string   `json:"experience_level"`
	RemoteType      string   `json:"remote_type"`
	SalaryMin       *float64 `json:"salary_min"`
	Location        string   `json:"location"`
	Limit           int      `json:"limit"`
	Offset          int      `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSearchCacheKey is stable across whitespace and case differences in
// the free-text filters.
func JobsSearchCacheKey(params JobSearchParams) string {
	in := jobSearchCacheKeyInput{
		Keyword:         normalizeSearchValue(params.Keyword),
		ExperienceLevel: normalizeSearchValue(params.ExperienceLevel),
		RemoteType:      normalizeSearchValue(params.RemoteType),
		SalaryMin:       params.SalaryMin,
		Location:        normalizeSearchValue(params.Location),
		Limit:           params.Limit,
		Offset:          params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return cache.SearchPrefix + hex.EncodeToString(sum[:])
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	return cache.LockPrefix + strings.TrimPrefix(searchKey, cache.SearchPrefix)
}
