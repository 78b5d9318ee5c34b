package expenditure

import (
	"context"
	"net/http"

	"hrms/internal/identity"
	"hrms/internal/shared/apperror"
	"hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("expenditure.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expenditure.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("expenditure request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeGuardRefusal(c *gin.Context) {
	response.Error(c, http.StatusConflict, apperror.CodeConflict,
		"The request cannot be transitioned in its current state", nil)
}

func (h *Handler) Create(c *gin.Context) {
	employeeID := c.GetString("user_id")

	var req CreateExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), employeeID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve, StatusApproved)
}

func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject, StatusRejected)
}

func (h *Handler) decide(
	c *gin.Context,
	op func(ctx context.Context, requestID, managerID string, note *string) (bool, error),
	targetStatus string,
) {
	id := c.Param("id")
	managerID := c.GetString("user_id")

	var req DecideExpenditureRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid input", err.Error())
			return
		}
	}

	ok, err := op(c.Request.Context(), id, managerID, req.DecisionNote)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !ok {
		h.writeGuardRefusal(c)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": targetStatus}, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	employeeID := c.GetString("user_id")

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	resp, err := h.service.List(c.Request.Context(), identity.Self{EmployeeID: employeeID}, status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// List is the role-scoped listing: employees see their own rows, managers
// their reports, admins everything.
func (h *Handler) List(c *gin.Context) {
	scope := identity.FromClaims(
		c.GetString("user_id"),
		identity.Role(c.GetString("role")),
		c.GetString("company_id"),
	)

	var status *string
	if v := c.Query("status"); v != "" {
		status = &v
	}

	resp, err := h.service.List(c.Request.Context(), scope, status)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPending(c *gin.Context) {
	managerID := c.GetString("user_id")
	companyID := c.GetString("company_id")

	resp, err := h.service.ListPendingForCompany(c.Request.Context(), managerID, companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	callerID := c.GetString("user_id")
	role := identity.Role(c.GetString("role"))

	resp, err := h.service.GetByID(c.Request.Context(), callerID, role, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
