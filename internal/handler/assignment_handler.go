package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/observability"
	"github.com/opencampus/academics-api/internal/service"
	"github.com/opencampus/academics-api/internal/utils"
)

// AssignmentHandler wires assignment HTTP routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(svc service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: svc,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group.
func (h *AssignmentHandler) Register(router fiber.Router, facultyOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", facultyOnly, h.create)
	router.Patch("/:id", facultyOnly, h.update)
	router.Post("/:id/publish", facultyOnly, h.transition(models.AssignmentStatusPublished))
	router.Post("/:id/close", facultyOnly, h.transition(models.AssignmentStatusClosed))
	router.Post("/:id/cancel", facultyOnly, h.transition(models.AssignmentStatusCancelled))
	router.Delete("/:id", facultyOnly, h.delete)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	req := dto.AssignmentListRequest{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	}

	var err error
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}
	if req.CourseSectionID, err = parseQueryUintPtr(c, "course_section_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course_section_id")
	}
	if req.FacultyID, err = parseQueryUintPtr(c, "faculty_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid faculty_id")
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignments retrieved", result)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	message := "assignment created"
	if result.StatusAdjusted {
		message = "assignment created as draft"
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, message, result)
}

func (h *AssignmentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment updated", result)
}

func (h *AssignmentHandler) transition(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseUintParam(c, "id")
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}

		result, err := h.service.Transition(c.Context(), id, target, actorFromContext(c))
		if err != nil {
			return h.handleError(c, err)
		}

		message := "assignment " + result.Assignment.Status
		if result.StatusAdjusted {
			message = "assignment kept as draft"
		}

		return utils.SendSuccess(c, message, result)
	}
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment deleted", fiber.Map{"id": id})
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrSectionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course section not found")
	case errors.Is(err, service.ErrFacultyUnresolved):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotAssignmentOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAssignmentTerminal), errors.Is(err, service.ErrInvalidTransition):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		if violation, ok := service.AsRuleViolation(err); ok {
			observability.RuleRejects().WithLabelValues(violation.Rule).Inc()
			return utils.SendError(c, fiber.StatusUnprocessableEntity, violation.Message)
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
