package dto

import (
	"jobradar/internal/domain/job"

	"github.com/google/uuid"
)

type UpdatePreferencesRequest struct {
	Preferences UserPreferencePayload `json:"preferences"`
	SavedJobs   []uuid.UUID           `json:"saved_jobs"`
}

type PreferencesResponse struct {
	UserID      string                 `json:"user_id"`
	Preferences UserPreferenceResponse `json:"preferences"`
	SavedJobs   []uuid.UUID            `json:"saved_jobs"`
	UpdatedAt   string                 `json:"updated_at"`
}

func NewPreferencesResponse(p job.StoredPreference) PreferencesResponse {
	saved := p.SavedJobs
	if saved == nil {
		saved = []uuid.UUID{}
	}
	return PreferencesResponse{
		UserID:      p.UserID,
		Preferences: NewUserPreferenceResponse(p.Preference),
		SavedJobs:   saved,
		UpdatedAt:   formatTime(&p.UpdatedAt),
	}
}
