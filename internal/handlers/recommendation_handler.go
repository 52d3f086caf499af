package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"recommendation-service/internal/models"
	utils "recommendation-service/shared/utils"
)

type Recommender interface {
	Run(ctx context.Context, farmID uuid.UUID, userID string) (*models.RunResult, error)
	LatestRun(ctx context.Context, farmID uuid.UUID, userID string) (*models.RunResult, error)
}

type AdvisoryManager interface {
	Implement(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error)
	Dismiss(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error)
	Reactivate(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error)
	ApplyAction(ctx context.Context, id uuid.UUID, userID string, action models.AdvisoryAction) (*models.ActionResult, error)
	SubmitFeedback(ctx context.Context, id uuid.UUID, userID string, req models.SubmitFeedbackRequest) (*models.RecommendationFeedback, error)
	GetAdvisoryView(ctx context.Context, id uuid.UUID, userID string) (*models.AdvisoryView, error)
	ListAdvisories(ctx context.Context, filter models.AdvisoryFilter) ([]models.Advisory, *utils.Pagination, error)
	ListPestAlerts(ctx context.Context, filter models.PestAlertFilter) (*models.PestAlertList, error)
	ListMarketPredictions(ctx context.Context, filter models.MarketPredictionFilter) ([]models.MarketPricePrediction, error)
	ListResourceOptimizations(ctx context.Context, filter models.ResourceOptimizationFilter) (*models.ResourceOptimizationList, error)
}

type DashboardProvider interface {
	GetDashboard(ctx context.Context, farmID uuid.UUID, userID string) (*models.DashboardStats, error)
}

type RecommendationHandler struct {
	recommender Recommender
	advisories  AdvisoryManager
	dashboard   DashboardProvider
}

func NewRecommendationHandler(recommender Recommender, advisories AdvisoryManager, dashboard DashboardProvider) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		advisories:  advisories,
		dashboard:   dashboard,
	}
}

func (h *RecommendationHandler) Register(app *fiber.App) {
	protectedGr := app.Group("recommendation/protected/api/v2")

	farmGr := protectedGr.Group("/farms/:farm_id/recommendations")
	farmGr.Post("/generate", h.GenerateRecommendations)
	farmGr.Get("/dashboard", h.GetDashboard)
	farmGr.Get("/latest-run", h.GetLatestRun)

	advisoryGr := protectedGr.Group("/advisories")
	advisoryGr.Get("/", h.ListAdvisories)
	advisoryGr.Get("/:id", h.GetAdvisory)
	advisoryGr.Post("/:id/implement", h.ImplementAdvisory)
	advisoryGr.Post("/:id/dismiss", h.DismissAdvisory)
	advisoryGr.Post("/:id/reactivate", h.ReactivateAdvisory)
	advisoryGr.Post("/:id/actions", h.AdvisoryAction)
	advisoryGr.Put("/:id/feedback", h.SubmitFeedback)

	protectedGr.Get("/pest-alerts", h.ListPestAlerts)
	protectedGr.Get("/market-predictions", h.ListMarketPredictions)
	protectedGr.Get("/resource-optimizations", h.ListResourceOptimizations)
}

// ============================================================================
// HELPERS
// ============================================================================

func requireUser(c fiber.Ctx) (string, error) {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return "", c.Status(http.StatusUnauthorized).JSON(
			utils.CreateErrorResponse("UNAUTHORIZED", "User ID is required"))
	}
	return userID, nil
}

func badRequest(c fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("BAD_REQUEST", message))
}

// respondError maps typed service errors onto HTTP statuses.
func respondError(c fiber.Ctx, err error, operation string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(utils.CreateErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, models.ErrValidation):
		return c.Status(http.StatusBadRequest).JSON(utils.CreateErrorResponse("VALIDATION_ERROR", err.Error()))
	case errors.Is(err, models.ErrConflict):
		return c.Status(http.StatusConflict).JSON(utils.CreateErrorResponse("CONFLICT", err.Error()))
	default:
		slog.Error("request failed", "operation", operation, "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "Failed to "+operation))
	}
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// optionalUUIDQuery returns nil when the query parameter is absent.
func optionalUUIDQuery(c fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ============================================================================
// FARM ROUTES
// ============================================================================

func (h *RecommendationHandler) GenerateRecommendations(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	farmID, ok := uuidParam(c, "farm_id")
	if !ok {
		return badRequest(c, "Invalid farm ID format")
	}

	result, err := h.recommender.Run(c.Context(), farmID, userID)
	if err != nil {
		return respondError(c, err, "generate recommendations")
	}
	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(result))
}

func (h *RecommendationHandler) GetDashboard(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	farmID, ok := uuidParam(c, "farm_id")
	if !ok {
		return badRequest(c, "Invalid farm ID format")
	}

	stats, err := h.dashboard.GetDashboard(c.Context(), farmID, userID)
	if err != nil {
		return respondError(c, err, "get dashboard")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(stats))
}

func (h *RecommendationHandler) GetLatestRun(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	farmID, ok := uuidParam(c, "farm_id")
	if !ok {
		return badRequest(c, "Invalid farm ID format")
	}

	result, err := h.recommender.LatestRun(c.Context(), farmID, userID)
	if err != nil {
		return respondError(c, err, "get latest run")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

// ============================================================================
// ADVISORY ROUTES
// ============================================================================

func (h *RecommendationHandler) ListAdvisories(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}

	farmID, err := optionalUUIDQuery(c, "farm_id")
	if err != nil {
		return badRequest(c, "Invalid farm ID format")
	}
	page, err := utils.GetQueryParamAsInt(c, "page", 1)
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit, err := utils.GetQueryParamAsInt(c, "limit", 0)
	if err != nil {
		return badRequest(c, err.Error())
	}

	advisories, pagination, err := h.advisories.ListAdvisories(c.Context(), models.AdvisoryFilter{
		UserID:   userID,
		FarmID:   farmID,
		Type:     models.RecommendationType(c.Query("type")),
		Priority: models.Priority(c.Query("priority")),
		Status:   models.AdvisoryStatus(c.Query("status")),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return respondError(c, err, "list advisories")
	}
	return c.Status(http.StatusOK).JSON(utils.CreatePagedResponse(advisories, pagination))
}

func (h *RecommendationHandler) GetAdvisory(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid advisory ID format")
	}

	view, err := h.advisories.GetAdvisoryView(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err, "get advisory")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(view))
}

func (h *RecommendationHandler) ImplementAdvisory(c fiber.Ctx) error {
	return h.transition(c, h.advisories.Implement, "implement advisory")
}

func (h *RecommendationHandler) DismissAdvisory(c fiber.Ctx) error {
	return h.transition(c, h.advisories.Dismiss, "dismiss advisory")
}

func (h *RecommendationHandler) ReactivateAdvisory(c fiber.Ctx) error {
	return h.transition(c, h.advisories.Reactivate, "reactivate advisory")
}

func (h *RecommendationHandler) transition(
	c fiber.Ctx,
	apply func(ctx context.Context, id uuid.UUID, userID string) (*models.Advisory, error),
	operation string,
) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid advisory ID format")
	}

	advisory, err := apply(c.Context(), id, userID)
	if err != nil {
		return respondError(c, err, operation)
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(advisory))
}

func (h *RecommendationHandler) AdvisoryAction(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid advisory ID format")
	}

	var req models.AdvisoryActionRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("failed to parse request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	result, err := h.advisories.ApplyAction(c.Context(), id, userID, req.Action)
	if err != nil {
		return respondError(c, err, "apply advisory action")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(result))
}

func (h *RecommendationHandler) SubmitFeedback(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid advisory ID format")
	}

	var req models.SubmitFeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		slog.Error("failed to parse request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	feedback, err := h.advisories.SubmitFeedback(c.Context(), id, userID, req)
	if err != nil {
		return respondError(c, err, "submit feedback")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(feedback))
}

// ============================================================================
// DETAIL LISTINGS
// ============================================================================

func (h *RecommendationHandler) ListPestAlerts(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	farmID, err := optionalUUIDQuery(c, "farm_id")
	if err != nil {
		return badRequest(c, "Invalid farm ID format")
	}

	alerts, err := h.advisories.ListPestAlerts(c.Context(), models.PestAlertFilter{
		OwnerID:  userID,
		FarmID:   farmID,
		Severity: models.Severity(c.Query("severity")),
		Type:     models.AlertKind(c.Query("type")),
	})
	if err != nil {
		return respondError(c, err, "list pest alerts")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(alerts))
}

func (h *RecommendationHandler) ListMarketPredictions(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	cropID, err := optionalUUIDQuery(c, "crop_id")
	if err != nil {
		return badRequest(c, "Invalid crop ID format")
	}

	predictions, err := h.advisories.ListMarketPredictions(c.Context(), models.MarketPredictionFilter{
		OwnerID: userID,
		CropID:  cropID,
	})
	if err != nil {
		return respondError(c, err, "list market predictions")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(predictions))
}

func (h *RecommendationHandler) ListResourceOptimizations(c fiber.Ctx) error {
	userID, err := requireUser(c)
	if userID == "" {
		return err
	}
	farmID, err := optionalUUIDQuery(c, "farm_id")
	if err != nil {
		return badRequest(c, "Invalid farm ID format")
	}

	optimizations, err := h.advisories.ListResourceOptimizations(c.Context(), models.ResourceOptimizationFilter{
		OwnerID:      userID,
		FarmID:       farmID,
		ResourceType: models.ResourceType(c.Query("resource_type")),
	})
	if err != nil {
		return respondError(c, err, "list resource optimizations")
	}
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(optimizations))
}
