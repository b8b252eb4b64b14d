package handlers

import (
	"context"

	"supportdesk/internal/dto"
	"supportdesk/internal/models"
	"supportdesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// apologyResponse is returned when processing fails in a way the pipeline
// contracts did not absorb. The boundary never surfaces application
// errors as transport failures.
const apologyResponse = "I apologize, but I'm experiencing technical difficulties. Please try again later."

type QueryHandler struct {
	pipeline *service.Pipeline
	logger   *zap.Logger
}

func NewQueryHandler(pipeline *service.Pipeline, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// SubmitQuery godoc
// @Summary Submit a customer support query
// @Description Route a query through classification, answer resolution and tone review
// @Tags support
// @Accept json
// @Produce json
// @Param request body dto.QueryRequest true "Customer query"
// @Success 200 {object} dto.QueryResponse
// @Failure 400 {object} map[string]string
// @Router /support/query [post]
func (h *QueryHandler) SubmitQuery(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := h.process(c.Context(), req.Query)
	return c.JSON(dto.QueryResponse{
		Category: string(result.Category),
		Response: result.Response,
	})
}

// process shields the boundary from any panic escaping the pipeline and
// converts it into a default result.
func (h *QueryHandler) process(ctx context.Context, query string) (result *models.QueryResult) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Pipeline failure recovered at boundary", zap.Any("panic", rec))
			result = &models.QueryResult{
				Category: models.CategoryDefault,
				Response: apologyResponse,
			}
		}
	}()
	return h.pipeline.Process(ctx, query)
}

// Health godoc
// @Summary Liveness check
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QueryHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}

// Root godoc
// @Summary Service banner
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *QueryHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Customer Support API is running",
	})
}
