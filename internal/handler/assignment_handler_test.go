package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/academics-api/internal/dto"
	"github.com/opencampus/academics-api/internal/models"
	"github.com/opencampus/academics-api/internal/service"
)

type stubAssignmentService struct {
	listFn       func(ctx context.Context, req dto.AssignmentListRequest) (dto.AssignmentListResponse, error)
	getFn        func(ctx context.Context, id uint) (dto.AssignmentResponse, error)
	createFn     func(ctx context.Context, payload dto.AssignmentCreateRequest, actor service.Actor) (dto.AssignmentSaveResult, error)
	updateFn     func(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest, actor service.Actor) (dto.AssignmentSaveResult, error)
	transitionFn func(ctx context.Context, id uint, target string, actor service.Actor) (dto.AssignmentSaveResult, error)
	deleteFn     func(ctx context.Context, id uint, actor service.Actor) error
}

func (s *stubAssignmentService) List(ctx context.Context, req dto.AssignmentListRequest) (dto.AssignmentListResponse, error) {
	return s.listFn(ctx, req)
}

func (s *stubAssignmentService) Get(ctx context.Context, id uint) (dto.AssignmentResponse, error) {
	return s.getFn(ctx, id)
}

func (s *stubAssignmentService) Create(ctx context.Context, payload dto.AssignmentCreateRequest, actor service.Actor) (dto.AssignmentSaveResult, error) {
	return s.createFn(ctx, payload, actor)
}

func (s *stubAssignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest, actor service.Actor) (dto.AssignmentSaveResult, error) {
	return s.updateFn(ctx, id, payload, actor)
}

func (s *stubAssignmentService) Transition(ctx context.Context, id uint, target string, actor service.Actor) (dto.AssignmentSaveResult, error) {
	return s.transitionFn(ctx, id, target, actor)
}

func (s *stubAssignmentService) Delete(ctx context.Context, id uint, actor service.Actor) error {
	return s.deleteFn(ctx, id, actor)
}

func newAssignmentTestApp(svc service.AssignmentService, actor service.Actor) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", actor.ID)
		c.Locals("user_role", actor.Role)
		return c.Next()
	})

	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	handler := NewAssignmentHandler(svc, zerolog.New(io.Discard))
	handler.Register(app.Group("/assignments"), passthrough)
	return app
}

func performJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestAssignmentHandlerCreatePassesActor(t *testing.T) {
	var captured service.Actor
	svc := &stubAssignmentService{
		createFn: func(_ context.Context, payload dto.AssignmentCreateRequest, actor service.Actor) (dto.AssignmentSaveResult, error) {
			captured = actor
			return dto.AssignmentSaveResult{
				Assignment: dto.AssignmentResponse{ID: 1, Title: payload.Title, Status: models.AssignmentStatusDraft},
			}, nil
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodPost, "/assignments", dto.AssignmentCreateRequest{
		Title:           "Graph algorithms",
		Description:     "Implement Dijkstra over the campus map",
		CourseSectionID: 1,
		DueDate:         time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		MaxMarks:        100,
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(7), captured.ID)
	require.Equal(t, service.RoleFaculty, captured.Role)
}

func TestAssignmentHandlerCreateReportsDowngrade(t *testing.T) {
	svc := &stubAssignmentService{
		createFn: func(context.Context, dto.AssignmentCreateRequest, service.Actor) (dto.AssignmentSaveResult, error) {
			return dto.AssignmentSaveResult{
				Assignment:       dto.AssignmentResponse{ID: 1, Status: models.AssignmentStatusDraft},
				StatusAdjusted:   true,
				AdjustmentReason: "due date is not in the future; assignment kept as draft",
			}, nil
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodPost, "/assignments", map[string]interface{}{"title": "x"})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	payload := decodeEnvelope(t, resp)
	require.Equal(t, "assignment created as draft", payload["message"])

	data := payload["data"].(map[string]interface{})
	require.Equal(t, true, data["status_adjusted"])
	require.NotEmpty(t, data["adjustment_reason"])
}

func TestAssignmentHandlerRuleViolationReturns422(t *testing.T) {
	svc := &stubAssignmentService{
		createFn: func(context.Context, dto.AssignmentCreateRequest, service.Actor) (dto.AssignmentSaveResult, error) {
			return dto.AssignmentSaveResult{}, &service.RuleViolation{
				Rule:    service.RuleSectionQuota,
				Message: "max two assignments per section per semester",
			}
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodPost, "/assignments", map[string]interface{}{"title": "x"})

	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	payload := decodeEnvelope(t, resp)
	require.Equal(t, false, payload["success"])
	require.Equal(t, "max two assignments per section per semester", payload["message"])
}

func TestAssignmentHandlerNotFound(t *testing.T) {
	svc := &stubAssignmentService{
		getFn: func(context.Context, uint) (dto.AssignmentResponse, error) {
			return dto.AssignmentResponse{}, service.ErrAssignmentNotFound
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodGet, "/assignments/42", nil)

	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignmentHandlerInvalidIdentifier(t *testing.T) {
	svc := &stubAssignmentService{}
	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})

	resp := performJSON(t, app, http.MethodGet, "/assignments/not-a-number", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssignmentHandlerTransitionConflict(t *testing.T) {
	svc := &stubAssignmentService{
		transitionFn: func(context.Context, uint, string, service.Actor) (dto.AssignmentSaveResult, error) {
			return dto.AssignmentSaveResult{}, service.ErrInvalidTransition
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 7, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodPost, "/assignments/1/close", nil)

	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAssignmentHandlerOwnerForbidden(t *testing.T) {
	svc := &stubAssignmentService{
		updateFn: func(context.Context, uint, dto.AssignmentUpdateRequest, service.Actor) (dto.AssignmentSaveResult, error) {
			return dto.AssignmentSaveResult{}, service.ErrNotAssignmentOwner
		},
	}

	app := newAssignmentTestApp(svc, service.Actor{ID: 99, Role: service.RoleFaculty})
	resp := performJSON(t, app, http.MethodPatch, "/assignments/1", map[string]interface{}{"title": "mine now"})

	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
