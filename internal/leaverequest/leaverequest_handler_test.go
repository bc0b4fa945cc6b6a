package leaverequest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CodiWebSite/poni-connect-sub002/internal/domain"
	"github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest"
	leaverequesterrors "github.com/CodiWebSite/poni-connect-sub002/internal/leaverequest/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRequestService struct {
	createFn  func(ctx context.Context, actor leaverequest.Actor, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error)
	approveFn func(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.ApprovalResult, error)
	getAllFn  func(ctx context.Context, actor leaverequest.Actor, canReadAll bool) ([]leaverequest.LeaveRequestResponse, error)
}

func (f *fakeLeaveRequestService) Create(ctx context.Context, actor leaverequest.Actor, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeLeaveRequestService) GetAll(ctx context.Context, actor leaverequest.Actor, canReadAll bool) ([]leaverequest.LeaveRequestResponse, error) {
	return f.getAllFn(ctx, actor, canReadAll)
}
func (f *fakeLeaveRequestService) GetByID(ctx context.Context, actor leaverequest.Actor, canReadAll bool, id string) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) Sign(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.SignLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) Approve(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.ApprovalResult, error) {
	return f.approveFn(ctx, actor, id, req)
}
func (f *fakeLeaveRequestService) Reject(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.RejectLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
	return leaverequest.LeaveRequestResponse{}, nil
}
func (f *fakeLeaveRequestService) Delete(ctx context.Context, actor leaverequest.Actor, id string) error {
	return nil
}

func newTestContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

type testEnvelope struct {
	Ok    bool `json:"ok"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestLeaveRequestHandler_Create(t *testing.T) {
	t.Run("returns 201 with the draft", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			createFn: func(ctx context.Context, actor leaverequest.Actor, req leaverequest.CreateLeaveRequest) (leaverequest.LeaveRequestResponse, error) {
				assert.Equal(t, "2025-04-28", req.StartDate)
				return leaverequest.LeaveRequestResponse{
					ID:     uuid.New().String(),
					Status: leaverequest.StatusDraft,
				}, nil
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/leave-requests", gin.H{
			"start_date": "2025-04-28",
			"end_date":   "2025-05-02",
		})
		c.Set("user_id", uuid.New().String())
		c.Set("role", domain.RoleEmployee)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
	})

	t.Run("missing dates fail validation", func(t *testing.T) {
		h := leaverequest.NewHandler(&fakeLeaveRequestService{})

		c, w := newTestContext(t, http.MethodPost, "/leave-requests", gin.H{})

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestLeaveRequestHandler_Approve(t *testing.T) {
	t.Run("maps an invalid transition to 409", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.ApprovalResult, error) {
				return leaverequest.ApprovalResult{}, leaverequesterrors.ErrInvalidTransition
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/leave-requests/x/approve", gin.H{
			"signature": "data:image/png;base64,aGVsbG8=",
		})
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
	})

	t.Run("surfaces the balance warning", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			approveFn: func(ctx context.Context, actor leaverequest.Actor, id string, req leaverequest.ApproveLeaveRequest) (leaverequest.ApprovalResult, error) {
				return leaverequest.ApprovalResult{
					Request:             leaverequest.LeaveRequestResponse{Status: leaverequest.StatusApproved},
					RemainingDays:       -1,
					InsufficientBalance: true,
				}, nil
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/leave-requests/x/approve", gin.H{
			"signature": "data:image/png;base64,aGVsbG8=",
		})
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var env struct {
			Ok   bool                        `json:"ok"`
			Data leaverequest.ApprovalResult `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Data.InsufficientBalance)
		assert.Equal(t, -1, env.Data.RemainingDays)
	})
}

func TestLeaveRequestHandler_GetAll(t *testing.T) {
	t.Run("employees only read their own", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			getAllFn: func(ctx context.Context, actor leaverequest.Actor, canReadAll bool) ([]leaverequest.LeaveRequestResponse, error) {
				assert.False(t, canReadAll)
				return []leaverequest.LeaveRequestResponse{}, nil
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/leave-requests", nil)
		c.Set("user_id", uuid.New().String())
		c.Set("role", domain.RoleEmployee)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("heads read everything", func(t *testing.T) {
		svc := &fakeLeaveRequestService{
			getAllFn: func(ctx context.Context, actor leaverequest.Actor, canReadAll bool) ([]leaverequest.LeaveRequestResponse, error) {
				assert.True(t, canReadAll)
				return []leaverequest.LeaveRequestResponse{}, nil
			},
		}
		h := leaverequest.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/leave-requests", nil)
		c.Set("user_id", uuid.New().String())
		c.Set("role", domain.RoleDepartmentHead)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
