package handler

import (
	"errors"
	"time"

	"github.com/farhanhakim/ai-interviewer/internal/dto"
	"github.com/farhanhakim/ai-interviewer/internal/middleware"
	"github.com/farhanhakim/ai-interviewer/internal/response"
	"github.com/farhanhakim/ai-interviewer/internal/usecase"
	"github.com/farhanhakim/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type InterviewHandler struct {
	uc *usecase.InterviewUsecase
}

func NewInterviewHandler(uc *usecase.InterviewUsecase) *InterviewHandler {
	return &InterviewHandler{uc: uc}
}

func (h *InterviewHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/interviews", h.Create)
	app.Get("/interviews", h.List)
	app.Post("/interviews/:id/start", h.Start)
	app.Post("/interviews/:id/answers", middleware.RateLimiter(1, 2*time.Second), h.SubmitAnswer)
	app.Post("/interviews/:id/skip", h.Skip)
	app.Get("/interviews/:id/resume", h.Resume)
	app.Get("/interviews/:id/report", h.Report)
	app.Get("/interviews/:id", h.Get)
	app.Delete("/interviews/:id", h.Delete)
}

func (h *InterviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.JobRole == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "job_role is required",
		})
	}

	snapshot, err := h.uc.Create(c.Context(), req)
	if err != nil {
		return h.fail(c, "failed to create interview", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Interview created",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) List(c *fiber.Ctx) error {
	candidateID := c.Query("candidate_id")
	if candidateID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "candidate_id is required",
		})
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 10)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	items, total, err := h.uc.List(c.Context(), candidateID, (page-1)*pageSize, pageSize)
	if err != nil {
		return h.fail(c, "failed to list interviews", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Interviews retrieved",
		Data:       items,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	snapshot, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "failed to start interview", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview started",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) SubmitAnswer(c *fiber.Ctx) error {
	var sub dto.AnswerSubmission
	if err := c.BodyParser(&sub); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	snapshot, err := h.uc.SubmitAnswer(c.Context(), c.Params("id"), sub)
	if err != nil {
		return h.fail(c, "failed to submit answer", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Answer recorded",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) Skip(c *fiber.Ctx) error {
	snapshot, err := h.uc.SkipQuestion(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "failed to skip question", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Question skipped",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) Resume(c *fiber.Ctx) error {
	snapshot, err := h.uc.Resume(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "failed to resume interview", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview resumed",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) Report(c *fiber.Ctx) error {
	report, err := h.uc.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "failed to get report", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Report retrieved",
		Data:    report,
	})
}

func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	snapshot, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "failed to get interview", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview retrieved",
		Data:    snapshot,
	})
}

func (h *InterviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "failed to delete interview", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview deleted",
	})
}

// fail maps usecase errors onto HTTP statuses. State-machine rejections are
// conflicts, not server failures.
func (h *InterviewHandler) fail(c *fiber.Ctx, message string, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrAlreadyCompleted),
		errors.Is(err, usecase.ErrNotReady):
		code = fiber.StatusConflict
	case errors.Is(err, usecase.ErrNoQuestions):
		code = fiber.StatusUnprocessableEntity
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}
