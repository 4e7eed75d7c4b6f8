package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/repository"
)

// ErrMarksExceedMax indicates the awarded marks surpass the assignment's
// maximum. This is enforced here, in the core grading path, so direct API
// writes cannot produce grades above the ceiling.
var ErrMarksExceedMax = errors.New("marks exceed assignment maximum")

// GradingService binds grades to submissions and keeps the audit history.
type GradingService interface {
	Grade(ctx context.Context, submissionID uint, payload dto.GradeRequest, actor Actor) (dto.SubmissionResponse, error)
	History(ctx context.Context, submissionID uint) ([]dto.GradeHistoryEntry, error)
}

type gradingService struct {
	submissions repository.SubmissionRepository
	grades      repository.GradeRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	activity    ActivityRecorder
	events      EventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradingService constructs the grading service.
func NewGradingService(subRepo repository.SubmissionRepository, gradeRepo repository.GradeRepository, validate *validator.Validate, activity ActivityRecorder, events EventPublisher, logger zerolog.Logger) GradingService {
	return &gradingService{
		submissions: subRepo,
		grades:      gradeRepo,
		validator:   validate,
		sanitizer:   bluemonday.UGCPolicy(),
		activity:    activity,
		events:      events,
		logger:      logger.With().Str("component", "grading_service").Logger(),
		now:         time.Now,
	}
}

func (s *gradingService) Grade(ctx context.Context, submissionID uint, payload dto.GradeRequest, actor Actor) (dto.SubmissionResponse, error) {
	tracer := otel.Tracer("github.com/opencampus/academics-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.record")
	span.SetAttributes(
		attribute.Int64("grading.submission_id", int64(submissionID)),
		attribute.Int64("grading.actor_id", int64(actor.ID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "submission_not_found")
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_lookup_failed")
		return dto.SubmissionResponse{}, err
	}

	maxMarks := submission.Assignment.MaxMarks
	if maxMarks > 0 && payload.MarksObtained > maxMarks+1e-9 {
		span.SetStatus(codes.Error, "marks_exceed_max")
		return dto.SubmissionResponse{}, ErrMarksExceedMax
	}

	gradedAt := s.now()
	feedback := s.sanitizer.Sanitize(strings.TrimSpace(payload.Feedback))
	letter := ""
	if pct := (models.AssignmentGrade{MarksObtained: payload.MarksObtained}).Percentage(maxMarks); pct != nil {
		letter = models.LetterFor(*pct)
	}

	if submission.Grade != nil {
		grade := *submission.Grade
		grade.MarksObtained = payload.MarksObtained
		grade.GradeLetter = letter
		grade.Feedback = feedback
		grade.GradedBy = actor.ID
		grade.GradedAt = gradedAt
		if err := s.grades.Update(ctx, &grade); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "grade_update_failed")
			return dto.SubmissionResponse{}, err
		}
	} else {
		grade := models.AssignmentGrade{
			MarksObtained: payload.MarksObtained,
			GradeLetter:   letter,
			Feedback:      feedback,
			GradedBy:      actor.ID,
			GradedAt:      gradedAt,
		}
		if err := s.grades.Create(ctx, &grade); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "grade_create_failed")
			return dto.SubmissionResponse{}, err
		}

		submission.GradeID = &grade.ID
		if err := s.submissions.Update(ctx, &submission); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "submission_update_failed")
			return dto.SubmissionResponse{}, err
		}
	}

	history := models.GradeHistory{
		SubmissionID:  submission.ID,
		MarksObtained: payload.MarksObtained,
		Feedback:      feedback,
		GradedBy:      actor.ID,
		GradedAt:      gradedAt,
	}
	if err := s.grades.CreateHistory(ctx, &history); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to persist grading history")
		span.RecordError(err)
	}

	if s.activity != nil {
		entityID := submission.ID
		_, _ = s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "submission.graded",
			EntityType: "submission",
			EntityID:   &entityID,
			Metadata: map[string]interface{}{
				"assignment_id": submission.AssignmentID,
				"student_id":    submission.StudentID,
				"marks":         payload.MarksObtained,
			},
		})
	}

	if s.events != nil {
		s.events.Publish(EventSubmissionGraded, map[string]interface{}{
			"submission_id": submission.ID,
			"assignment_id": submission.AssignmentID,
			"student_id":    submission.StudentID,
			"marks":         payload.MarksObtained,
		})
	}

	graded, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		span.RecordError(err)
		return dto.SubmissionResponse{}, err
	}

	span.SetAttributes(attribute.Float64("grading.marks", payload.MarksObtained))

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Float64("marks", payload.MarksObtained).
		Msg("submission graded")

	return dto.NewSubmissionResponse(graded), nil
}

func (s *gradingService) History(ctx context.Context, submissionID uint) ([]dto.GradeHistoryEntry, error) {
	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	entries, err := s.grades.ListHistory(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	return dto.NewGradeHistorySlice(entries), nil
}
