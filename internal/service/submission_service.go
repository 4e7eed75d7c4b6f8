package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/repository"
)

// ErrSubmissionNotFound indicates a submission could not be found.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrDuplicateSubmission indicates the student already submitted for the
// assignment; resubmission goes through Resubmit instead.
var ErrDuplicateSubmission = errors.New("student already submitted for this assignment")

// ErrAssignmentNotOpen indicates the assignment is not accepting submissions.
var ErrAssignmentNotOpen = errors.New("assignment is not accepting submissions")

// ErrNotSubmissionOwner indicates a student tried to touch another student's
// submission.
var ErrNotSubmissionOwner = errors.New("submission belongs to another student")

// SubmissionService orchestrates submission workflows, including the
// one-shot late classification at first persistence.
type SubmissionService interface {
	List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Get(ctx context.Context, id uint) (dto.SubmissionResponse, error)
	Create(ctx context.Context, payload dto.SubmissionCreateRequest, actor Actor) (dto.SubmissionResponse, error)
	Resubmit(ctx context.Context, id uint, payload dto.SubmissionResubmitRequest, actor Actor) (dto.SubmissionResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(subRepo repository.SubmissionRepository, assignmentRepo repository.AssignmentRepository, validate *validator.Validate, events EventPublisher, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: subRepo,
		assignments: assignmentRepo,
		validator:   validate,
		events:      events,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) List(ctx context.Context, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	repoFilter := repository.SubmissionFilter{
		AssignmentID: filter.AssignmentID,
		StudentID:    filter.StudentID,
		Status:       filter.Status,
		LateOnly:     filter.LateOnly,
	}

	submissions, err := s.submissions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Get(ctx context.Context, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Create persists a new submission and classifies its timeliness exactly
// once. A submission arriving at or after the due instant is late; later
// edits to the assignment's due date never reclassify it.
func (s *submissionService) Create(ctx context.Context, payload dto.SubmissionCreateRequest, actor Actor) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if assignment.Status != models.AssignmentStatusPublished {
		return dto.SubmissionResponse{}, ErrAssignmentNotOpen
	}

	if _, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, actor.ID); err == nil {
		return dto.SubmissionResponse{}, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	submission := models.AssignmentSubmission{
		AssignmentID:  payload.AssignmentID,
		StudentID:     actor.ID,
		Content:       payload.Content,
		AttachmentURL: payload.AttachmentURL,
		Status:        models.SubmissionStatusSubmitted,
		SubmittedAt:   now,
	}

	if assignment.IsPastDue(now) {
		submission.IsLate = true
		if submission.Status == models.SubmissionStatusSubmitted {
			submission.Status = models.SubmissionStatusLate
		}
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Bool("is_late", created.IsLate).
		Msg("submission created")

	s.publish(EventSubmissionReceived, submissionEventPayload(created))
	if created.IsLate {
		s.publish(EventSubmissionLate, submissionEventPayload(created))
	}

	return dto.NewSubmissionResponse(created), nil
}

// Resubmit replaces the content of an existing submission. The original
// timeliness classification is deliberately left untouched: a submission is
// a point-in-time record of deadline compliance.
func (s *submissionService) Resubmit(ctx context.Context, id uint, payload dto.SubmissionResubmitRequest, actor Actor) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if actor.IsStudent() && submission.StudentID != actor.ID {
		return dto.SubmissionResponse{}, ErrNotSubmissionOwner
	}

	submission.Content = payload.Content
	submission.AttachmentURL = payload.AttachmentURL
	submission.Status = models.SubmissionStatusResubmitted

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	updated, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", updated.ID).Msg("submission resubmitted")

	return dto.NewSubmissionResponse(updated), nil
}

func (s *submissionService) publish(subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(subject, payload)
}

func submissionEventPayload(submission models.AssignmentSubmission) map[string]interface{} {
	return map[string]interface{}{
		"submission_id": submission.ID,
		"assignment_id": submission.AssignmentID,
		"student_id":    submission.StudentID,
		"status":        submission.Status,
		"is_late":       submission.IsLate,
	}
}
