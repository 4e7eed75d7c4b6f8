package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/repository"
)

// SectionDashboardService aggregates submission and grading progress for a
// course section, cached in Redis because faculty poll it frequently.
type SectionDashboardService interface {
	GetDashboard(ctx context.Context, sectionID uint) (dto.SectionDashboardResponse, error)
}

type sectionDashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	catalog     repository.CatalogRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewSectionDashboardService builds the dashboard aggregator.
func NewSectionDashboardService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, catalog repository.CatalogRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) SectionDashboardService {
	return &sectionDashboardService{
		assignments: assignments,
		submissions: submissions,
		catalog:     catalog,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "section_dashboard_service").Logger(),
	}
}

func (s *sectionDashboardService) GetDashboard(ctx context.Context, sectionID uint) (dto.SectionDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:section:%d", sectionID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.SectionDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("section_id", sectionID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	if _, err := s.catalog.GetSection(ctx, sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SectionDashboardResponse{}, ErrSectionNotFound
		}
		return dto.SectionDashboardResponse{}, err
	}

	assignments, _, err := s.assignments.List(ctx, repository.AssignmentFilter{CourseSectionID: &sectionID})
	if err != nil {
		return dto.SectionDashboardResponse{}, err
	}

	response := dto.SectionDashboardResponse{CourseSectionID: sectionID}
	for _, assignment := range assignments {
		assignmentID := assignment.ID
		submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{AssignmentID: &assignmentID})
		if err != nil {
			return dto.SectionDashboardResponse{}, err
		}

		snapshot := dto.AssignmentSnapshot{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			Status:       assignment.Status,
			Submissions:  len(submissions),
		}

		var markTotal float64
		for _, submission := range submissions {
			if submission.IsLate {
				snapshot.Late++
			}
			if submission.Grade != nil {
				snapshot.Graded++
				markTotal += submission.Grade.MarksObtained
			}
		}
		if snapshot.Graded > 0 {
			snapshot.AverageMarks = math.Round(markTotal/float64(snapshot.Graded)*100) / 100
		}

		response.Assignments = append(response.Assignments, snapshot)
		response.Summary.TotalAssignments++
		response.Summary.TotalSubmissions += snapshot.Submissions
		response.Summary.LateSubmissions += snapshot.Late
		response.Summary.GradedCount += snapshot.Graded
	}

	if response.Summary.TotalSubmissions > 0 {
		total := float64(response.Summary.TotalSubmissions)
		response.Summary.LateRate = math.Round(float64(response.Summary.LateSubmissions)/total*10000) / 10000
		response.Summary.GradingProgress = math.Round(float64(response.Summary.GradedCount)/total*10000) / 10000
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}
