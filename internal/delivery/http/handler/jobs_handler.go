package handler

import (
	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/pkg/response"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobSearchUsecase
}

func NewJobsHandler(uc usecase.JobSearchUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes must run after handlers owning static /jobs sub-paths, since
// /:id would otherwise shadow them.
func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleSearch)
	r.Get("/:id", h.HandleGetJob)
}

func (h *JobsHandler) HandleSearch(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	salaryMin, err := parseQueryFloat(c, "salary_min")
	if err != nil {
		return err
	}

	params := usecase.JobSearchParams{
		Keyword:         c.Query("keyword"),
		ExperienceLevel: c.Query("experience_level"),
		RemoteType:      c.Query("remote_type"),
		SalaryMin:       salaryMin,
		Location:        c.Query("location"),
		Limit:           limit,
		Offset:          offset,
	}
	items, err := h.uc.Search(c.Context(), params)
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.JobSearchResponse{
		Jobs:   dto.NewJobResponses(items),
		Count:  len(items),
		Limit:  limit,
		Offset: offset,
	}
	return response.Success(c, fiber.StatusOK, "success", out)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := parseJobID("id", c.Params("id"))
	if err != nil {
		return err
	}

	l, err := h.uc.GetJob(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "success", dto.NewJobResponse(l))
}
