package handler

import (
	"strings"

	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/domain/job"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PredictionHandler struct {
	uc usecase.PredictionUsecase
}

func NewPredictionHandler(uc usecase.PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

func (h *PredictionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/predict-salary", h.HandlePredictSalary)
	r.Post("/recommendation", h.HandleRecommendation)
}

// HandlePredictSalary accepts the job id as a query parameter or in a JSON
// body; the query wins when both are given.
func (h *PredictionHandler) HandlePredictSalary(c fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("job_id"))
	if raw == "" && len(c.Body()) > 0 {
		var req dto.PredictSalaryRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
		raw = strings.TrimSpace(req.JobID)
	}

	id, err := parseJobID("job_id", raw)
	if err != nil {
		return err
	}

	p, err := h.uc.PredictSalary(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.SalaryPredictionResponse{
		JobID:              p.JobID,
		PredictedSalaryMin: p.Min,
		PredictedSalaryMax: p.Max,
		Currency:           p.Currency,
		ModelMode:          p.ModelMode,
	})
}

func (h *PredictionHandler) HandleRecommendation(c fiber.Ctx) error {
	var req dto.RecommendationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	id, err := parseJobID("job_id", strings.TrimSpace(req.JobID))
	if err != nil {
		return err
	}

	var pref *job.UserPreference
	if req.UserPreferences != nil {
		p := req.UserPreferences.ToDomain()
		pref = &p
	}

	res, err := h.uc.Recommend(c.Context(), usecase.RecommendationInput{
		JobID:       id,
		UserID:      middleware.UserID(c),
		Preferences: pref,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "success", dto.RecommendationResponse{
		JobID:            res.JobID,
		MatchScore:       res.MatchScore,
		SalaryScore:      res.SalaryScore,
		GrowthPotential:  res.GrowthPotential,
		Recommendation:   res.Label,
		Confidence:       res.Confidence,
		PreferenceSource: res.PreferenceSource,
	})
}
