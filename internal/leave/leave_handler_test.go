package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms/internal/identity"
	"hrms/internal/leave"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveWorkflow struct {
	createDraftFn func(ctx context.Context, employeeID string, req leave.CreateLeaveDraftRequest) (leave.LeaveRequestResponse, error)
	submitFn      func(ctx context.Context, requestID, employeeID string) (bool, error)
	approveFn     func(ctx context.Context, requestID, managerID string, note *string) (bool, error)
	rejectFn      func(ctx context.Context, requestID, managerID, note string) (bool, error)
	listMineFn    func(ctx context.Context, employeeID string, status *string) ([]leave.LeaveRequestResponse, error)
	listPendingFn func(ctx context.Context, managerID, companyID string) ([]leave.LeaveRequestResponse, error)
	getByIDFn     func(ctx context.Context, callerID string, role identity.Role, id string) (leave.LeaveRequestResponse, error)
}

func (f *fakeLeaveWorkflow) CreateDraft(ctx context.Context, employeeID string, req leave.CreateLeaveDraftRequest) (leave.LeaveRequestResponse, error) {
	return f.createDraftFn(ctx, employeeID, req)
}
func (f *fakeLeaveWorkflow) Submit(ctx context.Context, requestID, employeeID string) (bool, error) {
	return f.submitFn(ctx, requestID, employeeID)
}
func (f *fakeLeaveWorkflow) Approve(ctx context.Context, requestID, managerID string, note *string) (bool, error) {
	return f.approveFn(ctx, requestID, managerID, note)
}
func (f *fakeLeaveWorkflow) Reject(ctx context.Context, requestID, managerID, note string) (bool, error) {
	return f.rejectFn(ctx, requestID, managerID, note)
}
func (f *fakeLeaveWorkflow) ListMine(ctx context.Context, employeeID string, status *string) ([]leave.LeaveRequestResponse, error) {
	return f.listMineFn(ctx, employeeID, status)
}
func (f *fakeLeaveWorkflow) ListPendingForCompany(ctx context.Context, managerID, companyID string) ([]leave.LeaveRequestResponse, error) {
	return f.listPendingFn(ctx, managerID, companyID)
}
func (f *fakeLeaveWorkflow) GetByID(ctx context.Context, callerID string, role identity.Role, id string) (leave.LeaveRequestResponse, error) {
	return f.getByIDFn(ctx, callerID, role, id)
}

func TestLeaveHandler_CreateDraft(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		employeeID := uuid.New().String()
		typeID := uuid.New().String()

		svc := &fakeLeaveWorkflow{
			createDraftFn: func(ctx context.Context, empID string, req leave.CreateLeaveDraftRequest) (leave.LeaveRequestResponse, error) {
				assert.Equal(t, employeeID, empID)
				assert.Equal(t, typeID, req.LeaveTypeID)
				return leave.LeaveRequestResponse{
					ID:              uuid.New().String(),
					EmployeeID:      empID,
					LeaveTypeID:     req.LeaveTypeID,
					StartDate:       req.StartDate,
					EndDate:         req.EndDate,
					NumberOfDaysOff: 3,
					Reason:          req.Reason,
					Status:          leave.StatusDraft,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"` + typeID + `","start_date":"2025-09-22","end_date":"2025-09-24","reason":"family trip"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", employeeID)

		h.CreateDraft(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusDraft, got.Status)
		assert.Equal(t, 3, got.NumberOfDaysOff)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveWorkflow{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.CreateDraft(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestLeaveHandler_SubmitGuardRefusal(t *testing.T) {
	svc := &fakeLeaveWorkflow{
		submitFn: func(ctx context.Context, requestID, employeeID string) (bool, error) {
			return false, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/submit", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	h.Submit(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestLeaveHandler_ApproveSuccess(t *testing.T) {
	requestID := uuid.New().String()
	managerID := uuid.New().String()

	svc := &fakeLeaveWorkflow{
		approveFn: func(ctx context.Context, reqID, mgrID string, note *string) (bool, error) {
			assert.Equal(t, requestID, reqID)
			assert.Equal(t, managerID, mgrID)
			if assert.NotNil(t, note) {
				assert.Equal(t, "ok", *note)
			}
			return true, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"decision_note":"ok"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/approve", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Set("user_id", managerID)

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestLeaveHandler_RejectRequiresNoteAtBinding(t *testing.T) {
	h := leave.NewHandler(&fakeLeaveWorkflow{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/reject", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Set("user_id", uuid.New().String())

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestLeaveHandler_ListMinePassesStatusFilter(t *testing.T) {
	employeeID := uuid.New().String()

	svc := &fakeLeaveWorkflow{
		listMineFn: func(ctx context.Context, empID string, status *string) ([]leave.LeaveRequestResponse, error) {
			assert.Equal(t, employeeID, empID)
			if assert.NotNil(t, status) {
				assert.Equal(t, "APPROVED", *status)
			}
			return []leave.LeaveRequestResponse{}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/my?status=APPROVED", nil)
	c.Set("user_id", employeeID)

	h.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
