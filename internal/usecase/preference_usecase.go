package usecase

import (
	"context"
	"errors"
	"strings"

	"jobradar/internal/domain/job"
	"jobradar/internal/domain/scoring"
	"jobradar/internal/logger"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

var (
	allowedExperience = map[string]struct{}{
		job.ExperienceEntry: {}, job.ExperienceMid: {}, job.ExperienceSenior: {}, job.ExperienceLead: {},
	}
	allowedRemote = map[string]struct{}{
		job.RemoteAny: {}, job.RemoteFully: {}, job.RemoteHybrid: {}, job.RemoteOnSite: {},
	}
)

const maxSavedJobs = 200

type UpdatePreferenceInput struct {
	Preference job.UserPreference
	SavedJobs  []uuid.UUID
}

type PreferenceUsecase interface {
	Get(ctx context.Context, userID string) (job.StoredPreference, error)
	Update(ctx context.Context, userID string, in UpdatePreferenceInput) (job.StoredPreference, error)
}

type Preference struct {
	prefs repository.UserPreferenceRepository
	log   logger.Logger
}

func NewPreferenceUsecase(prefs repository.UserPreferenceRepository, log logger.Logger) *Preference {
	return &Preference{prefs: prefs, log: logger.OrNop(log)}
}

// Get returns the stored preference, or the defaults for a user who never
// saved one.
func (u *Preference) Get(ctx context.Context, userID string) (job.StoredPreference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return job.StoredPreference{}, ErrInvalidInput
	}

	p, err := u.prefs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return job.StoredPreference{
				UserID:     userID,
				Preference: job.DefaultPreference(),
				SavedJobs:  []uuid.UUID{},
			}, nil
		}
		u.log.Error("load preferences failed", map[string]interface{}{"user_id": userID, "error": err})
		return job.StoredPreference{}, ErrInternal
	}
	return p, nil
}

func (u *Preference) Update(ctx context.Context, userID string, in UpdatePreferenceInput) (job.StoredPreference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return job.StoredPreference{}, ErrInvalidInput
	}

	p := in.Preference
	p.ExperienceLevel = strings.ToLower(strings.TrimSpace(p.ExperienceLevel))
	p.RemotePreference = strings.ToLower(strings.TrimSpace(p.RemotePreference))
	p.Location = strings.TrimSpace(p.Location)
	p.Skills = scoring.NormalizeSkills(p.Skills)
	p = p.WithDefaults()

	fields := map[string]string{}
	if _, ok := allowedExperience[p.ExperienceLevel]; !ok {
		fields["experience_level"] = "must be one of entry, mid, senior, lead"
	}
	if _, ok := allowedRemote[p.RemotePreference]; !ok {
		fields["remote_preference"] = "must be one of any, fully-remote, hybrid, on-site"
	}
	if p.SalaryMin < 0 {
		fields["salary_min"] = "must be >= 0"
	}
	if len(in.SavedJobs) > maxSavedJobs {
		fields["saved_jobs"] = "too many items"
	}
	if len(fields) > 0 {
		return job.StoredPreference{}, &ValidationError{Fields: fields}
	}

	saved := make([]uuid.UUID, 0, len(in.SavedJobs))
	seen := make(map[uuid.UUID]struct{}, len(in.SavedJobs))
	for _, id := range in.SavedJobs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		saved = append(saved, id)
	}

	out, err := u.prefs.Upsert(ctx, job.StoredPreference{UserID: userID, Preference: p, SavedJobs: saved})
	if err != nil {
		u.log.Error("save preferences failed", map[string]interface{}{"user_id": userID, "error": err})
		return job.StoredPreference{}, ErrInternal
	}
	return out, nil
}
