package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/opencampus/academics-api/internal/service"
	"github.com/opencampus/academics-api/internal/utils"
)

// CatalogHandler exposes read-only academic structure endpoints.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger.With().Str("component", "catalog_handler").Logger(),
	}
}

// Register attaches catalog endpoints to the router group.
func (h *CatalogHandler) Register(router fiber.Router) {
	router.Get("/departments", h.listDepartments)
	router.Get("/courses", h.listCourses)
	router.Get("/sections", h.listSections)
	router.Get("/sections/:id", h.getSection)
}

func (h *CatalogHandler) listDepartments(c *fiber.Ctx) error {
	departments, err := h.service.ListDepartments(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "departments retrieved", departments)
}

func (h *CatalogHandler) listCourses(c *fiber.Ctx) error {
	departmentID, err := parseQueryUintPtr(c, "department_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department_id")
	}

	courses, err := h.service.ListCourses(c.Context(), departmentID)
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CatalogHandler) listSections(c *fiber.Ctx) error {
	courseID, err := parseQueryUintPtr(c, "course_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course_id")
	}

	sections, err := h.service.ListSections(c.Context(), courseID)
	if err != nil {
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "sections retrieved", sections)
}

func (h *CatalogHandler) getSection(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	section, err := h.service.GetSection(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course section not found")
		}
		return h.internalError(c, err)
	}
	return utils.SendSuccess(c, "section retrieved", section)
}

func (h *CatalogHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
