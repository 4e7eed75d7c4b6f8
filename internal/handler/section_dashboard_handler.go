package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/academics-api/internal/service"
	"github.com/opencampus/academics-api/internal/utils"
)

// SectionDashboardHandler serves grading-progress aggregates for faculty.
type SectionDashboardHandler struct {
	service service.SectionDashboardService
	logger  zerolog.Logger
}

// NewSectionDashboardHandler constructs the handler.
func NewSectionDashboardHandler(svc service.SectionDashboardService, logger zerolog.Logger) *SectionDashboardHandler {
	return &SectionDashboardHandler{
		service: svc,
		logger:  logger.With().Str("component", "section_dashboard_handler").Logger(),
	}
}

// Register attaches dashboard endpoints to the router group.
func (h *SectionDashboardHandler) Register(router fiber.Router, facultyOnly fiber.Handler) {
	router.Get("/sections/:id/dashboard", facultyOnly, h.dashboard)
}

func (h *SectionDashboardHandler) dashboard(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	dashboard, err := h.service.GetDashboard(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course section not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
