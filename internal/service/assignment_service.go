package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrSectionNotFound indicates the referenced course section does not exist.
var ErrSectionNotFound = errors.New("course section not found")

// ErrFacultyUnresolved indicates no owning faculty could be derived from the
// request or the section. An assignment without an owner is meaningless, so
// this aborts the save.
var ErrFacultyUnresolved = errors.New("assignment faculty could not be resolved")

// ErrAssignmentTerminal indicates the assignment is closed or cancelled and
// can no longer be edited.
var ErrAssignmentTerminal = errors.New("assignment is in a terminal state")

// ErrInvalidTransition indicates the requested lifecycle move is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrNotAssignmentOwner indicates a faculty member tried to act on another
// faculty's assignment.
var ErrNotAssignmentOwner = errors.New("assignment belongs to another faculty")

const downgradeReason = "due date is not in the future; assignment kept as draft"

// AssignmentService exposes assignment lifecycle use cases. Save operations
// return an AssignmentSaveResult so callers can detect that a publish was
// downgraded to draft without re-reading state.
type AssignmentService interface {
	List(ctx context.Context, req dto.AssignmentListRequest) (dto.AssignmentListResponse, error)
	Get(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	Create(ctx context.Context, payload dto.AssignmentCreateRequest, actor Actor) (dto.AssignmentSaveResult, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest, actor Actor) (dto.AssignmentSaveResult, error)
	Transition(ctx context.Context, id uint, target string, actor Actor) (dto.AssignmentSaveResult, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	catalog   repository.CatalogRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	activity  ActivityRecorder
	events    EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(repo repository.AssignmentRepository, catalog repository.CatalogRepository, validate *validator.Validate, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		repo:      repo,
		catalog:   catalog,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		activity:  activity,
		events:    events,
		logger:    logger.With().Str("component", "assignment_service").Logger(),
		now:       time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context, req dto.AssignmentListRequest) (dto.AssignmentListResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AssignmentListResponse{}, err
	}

	filter := repository.AssignmentFilter{
		Search:          req.Search,
		Status:          req.Status,
		CourseSectionID: req.CourseSectionID,
		FacultyID:       req.FacultyID,
		Sort:            req.Sort,
		Page:            req.Page,
		PageSize:        req.PageSize,
	}

	assignments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AssignmentListResponse{}, err
	}

	return dto.AssignmentListResponse{
		Items:      dto.NewAssignmentResponseSlice(assignments),
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
		Search:     req.Search,
	}, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest, actor Actor) (dto.AssignmentSaveResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return dto.AssignmentSaveResult{}, fmt.Errorf("invalid due date: %w", err)
	}

	status := payload.Status
	if status == "" {
		status = models.AssignmentStatusDraft
	}

	assignment := models.Assignment{
		Title:             payload.Title,
		Description:       s.sanitizer.Sanitize(payload.Description),
		CategoryID:        payload.CategoryID,
		Status:            status,
		DueDate:           dueDate,
		IsGroupAssignment: payload.IsGroupAssignment,
		MaxGroupSize:      payload.MaxGroupSize,
		MaxMarks:          payload.MaxMarks,
		CourseSectionID:   payload.CourseSectionID,
	}

	if assignment.AvailableFrom, err = parseOptionalTime(payload.AvailableFrom); err != nil {
		return dto.AssignmentSaveResult{}, fmt.Errorf("invalid available_from: %w", err)
	}
	if assignment.AvailableUntil, err = parseOptionalTime(payload.AvailableUntil); err != nil {
		return dto.AssignmentSaveResult{}, fmt.Errorf("invalid available_until: %w", err)
	}

	section, err := s.resolveLinks(ctx, &assignment, payload.FacultyID, actor)
	if err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	adjusted := s.applyLifecycleGuard(&assignment)

	if err := checkAssignmentIntegrity(assignment, section, s.now()); err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	if err := s.repo.Create(ctx, &assignment); err != nil {
		if errors.Is(err, repository.ErrSectionQuotaFull) {
			return dto.AssignmentSaveResult{}, violation(RuleSectionQuota, "max two assignments per section per semester")
		}
		return dto.AssignmentSaveResult{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Str("status", assignment.Status).
		Bool("status_adjusted", adjusted).
		Msg("assignment created")

	s.recordActivity(ctx, actor, "assignment.created", assignment.ID, map[string]interface{}{
		"status":          assignment.Status,
		"status_adjusted": adjusted,
		"section_id":      assignment.CourseSectionID,
	})
	s.publishLifecycleEvents(assignment, adjusted)

	return s.saveResult(assignment, adjusted), nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest, actor Actor) (dto.AssignmentSaveResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentSaveResult{}, ErrAssignmentNotFound
		}
		return dto.AssignmentSaveResult{}, err
	}

	if err := s.authorizeOwner(assignment, actor); err != nil {
		return dto.AssignmentSaveResult{}, err
	}
	if assignment.IsTerminal() {
		return dto.AssignmentSaveResult{}, ErrAssignmentTerminal
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.CategoryID != nil {
		assignment.CategoryID = payload.CategoryID
	}
	if payload.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err != nil {
			return dto.AssignmentSaveResult{}, fmt.Errorf("invalid due date: %w", err)
		}
		assignment.DueDate = dueDate
	}
	if payload.AvailableFrom != nil {
		if assignment.AvailableFrom, err = parseOptionalTime(payload.AvailableFrom); err != nil {
			return dto.AssignmentSaveResult{}, fmt.Errorf("invalid available_from: %w", err)
		}
	}
	if payload.AvailableUntil != nil {
		if assignment.AvailableUntil, err = parseOptionalTime(payload.AvailableUntil); err != nil {
			return dto.AssignmentSaveResult{}, fmt.Errorf("invalid available_until: %w", err)
		}
	}
	if payload.IsGroupAssignment != nil {
		assignment.IsGroupAssignment = *payload.IsGroupAssignment
	}
	if payload.MaxGroupSize != nil {
		assignment.MaxGroupSize = *payload.MaxGroupSize
	}
	if payload.MaxMarks != nil {
		assignment.MaxMarks = *payload.MaxMarks
	}

	section, err := s.catalog.GetSection(ctx, assignment.CourseSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentSaveResult{}, ErrSectionNotFound
		}
		return dto.AssignmentSaveResult{}, err
	}

	adjusted := s.applyLifecycleGuard(&assignment)

	if err := checkAssignmentIntegrity(assignment, section, s.now()); err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	if err := s.repo.Update(ctx, &assignment); err != nil {
		if errors.Is(err, repository.ErrSectionQuotaFull) {
			return dto.AssignmentSaveResult{}, violation(RuleSectionQuota, "max two assignments per section per semester")
		}
		return dto.AssignmentSaveResult{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Bool("status_adjusted", adjusted).Msg("assignment updated")

	s.recordActivity(ctx, actor, "assignment.updated", assignment.ID, map[string]interface{}{
		"status":          assignment.Status,
		"status_adjusted": adjusted,
	})
	if adjusted {
		s.publish(EventAssignmentDowngraded, assignmentEventPayload(assignment))
	}

	return s.saveResult(assignment, adjusted), nil
}

// Transition moves the assignment through its lifecycle. Publishing an
// assignment whose due date has passed does not fail: the guard keeps it a
// draft and the result reports the downgrade.
func (s *assignmentService) Transition(ctx context.Context, id uint, target string, actor Actor) (dto.AssignmentSaveResult, error) {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentSaveResult{}, ErrAssignmentNotFound
		}
		return dto.AssignmentSaveResult{}, err
	}

	if err := s.authorizeOwner(assignment, actor); err != nil {
		return dto.AssignmentSaveResult{}, err
	}
	if !assignment.CanTransitionTo(target) {
		return dto.AssignmentSaveResult{}, ErrInvalidTransition
	}

	assignment.Status = target
	adjusted := s.applyLifecycleGuard(&assignment)

	if err := s.repo.Update(ctx, &assignment); err != nil {
		return dto.AssignmentSaveResult{}, err
	}

	s.logger.Info().
		Uint("assignment_id", assignment.ID).
		Str("target", target).
		Str("status", assignment.Status).
		Msg("assignment transitioned")

	s.recordActivity(ctx, actor, "assignment."+target, assignment.ID, map[string]interface{}{
		"status":          assignment.Status,
		"status_adjusted": adjusted,
	})
	s.publishLifecycleEvents(assignment, adjusted)
	if assignment.Status == models.AssignmentStatusCancelled {
		s.publish(EventAssignmentCancelled, assignmentEventPayload(assignment))
	}

	return s.saveResult(assignment, adjusted), nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint, actor Actor) error {
	assignment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.authorizeOwner(assignment, actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assignment_id", id).Msg("assignment deleted")
	s.recordActivity(ctx, actor, "assignment.deleted", id, nil)
	return nil
}

// resolveLinks populates the canonical links from the selected section. The
// owning faculty is taken from the explicit payload field, then the acting
// faculty, then the section's assigned faculty; if all three are absent the
// save aborts with ErrFacultyUnresolved.
func (s *assignmentService) resolveLinks(ctx context.Context, assignment *models.Assignment, explicitFaculty *uint, actor Actor) (models.CourseSection, error) {
	section, err := s.catalog.GetSection(ctx, assignment.CourseSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CourseSection{}, ErrSectionNotFound
		}
		return models.CourseSection{}, err
	}

	assignment.CourseID = section.CourseID
	assignment.DepartmentID = section.Course.DepartmentID
	assignment.AcademicYearID = section.AcademicYearID
	assignment.Semester = section.Semester

	switch {
	case explicitFaculty != nil:
		assignment.FacultyID = *explicitFaculty
	case actor.Role == RoleFaculty && actor.ID > 0:
		assignment.FacultyID = actor.ID
	case section.FacultyID != nil:
		assignment.FacultyID = *section.FacultyID
	default:
		return models.CourseSection{}, ErrFacultyUnresolved
	}

	return section, nil
}

// applyLifecycleGuard downgrades a published assignment whose due date is
// not in the future back to draft. It reports the correction instead of
// raising, matching the save-time interception semantics.
func (s *assignmentService) applyLifecycleGuard(assignment *models.Assignment) bool {
	if assignment.Status != models.AssignmentStatusPublished {
		return false
	}
	if assignment.DueDate.After(s.now()) {
		return false
	}

	assignment.Status = models.AssignmentStatusDraft
	return true
}

func (s *assignmentService) authorizeOwner(assignment models.Assignment, actor Actor) error {
	if actor.Role == RoleFaculty && assignment.FacultyID != actor.ID {
		return ErrNotAssignmentOwner
	}
	return nil
}

func (s *assignmentService) saveResult(assignment models.Assignment, adjusted bool) dto.AssignmentSaveResult {
	result := dto.AssignmentSaveResult{
		Assignment:     dto.NewAssignmentResponse(assignment),
		StatusAdjusted: adjusted,
	}
	if adjusted {
		result.AdjustmentReason = downgradeReason
	}
	return result
}

func (s *assignmentService) publishLifecycleEvents(assignment models.Assignment, adjusted bool) {
	if adjusted {
		s.publish(EventAssignmentDowngraded, assignmentEventPayload(assignment))
		return
	}
	if assignment.Status == models.AssignmentStatusPublished {
		s.publish(EventAssignmentPublished, assignmentEventPayload(assignment))
	}
}

func (s *assignmentService) publish(subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(subject, payload)
}

func (s *assignmentService) recordActivity(ctx context.Context, actor Actor, action string, entityID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}
	_, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "assignment",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

func assignmentEventPayload(assignment models.Assignment) map[string]interface{} {
	return map[string]interface{}{
		"assignment_id": assignment.ID,
		"section_id":    assignment.CourseSectionID,
		"faculty_id":    assignment.FacultyID,
		"status":        assignment.Status,
		"due_date":      assignment.DueDate,
	}
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
