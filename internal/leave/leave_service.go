package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hrms/internal/events"
	"hrms/internal/identity"
	leaveerrors "hrms/internal/leave/errors"
	"hrms/internal/leavetype"
	"hrms/internal/messaging/kafka"
	"hrms/internal/policy"
	"hrms/internal/shared/apperror"
	"hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	CreateDraft(ctx context.Context, employeeID string, req CreateLeaveDraftRequest) (LeaveRequestResponse, error)
	Submit(ctx context.Context, requestID, employeeID string) (bool, error)
	Approve(ctx context.Context, requestID, managerID string, note *string) (bool, error)
	Reject(ctx context.Context, requestID, managerID, note string) (bool, error)
	ListMine(ctx context.Context, employeeID string, status *string) ([]LeaveRequestResponse, error)
	ListPendingForCompany(ctx context.Context, managerID, companyID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, callerID string, role identity.Role, id string) (LeaveRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	types  leavetype.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, types: types, outbox: outboxRepo, logger: l}
}

func (s *service) CreateDraft(ctx context.Context, employeeID string, req CreateLeaveDraftRequest) (LeaveRequestResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveRequestResponse{}, apperror.RequiredField("reason")
	}

	lt, err := s.types.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
		}
		s.logger.Error("create draft leave type lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		LeaveTypeID: typeUUID,
		LeaveType:   lt,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      reason,
		Status:      StatusDraft,
	}

	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create draft persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave draft success",
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*lr), nil
}

// Submit runs the DRAFT -> SUBMITTED guards in order, short-circuiting on
// the first failure. Guard failures are reported as a bare false so the
// caller cannot tell a missing request from a foreign or already-submitted
// one. The overlap and allowance reads are not serialized against other
// submissions; two overlapping drafts submitted at the same instant can
// both pass validation. The conditional write still makes each individual
// draft transition at most once.
func (s *service) Submit(ctx context.Context, requestID, employeeID string) (bool, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return false, leaveerrors.ErrInvalidRequestID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return false, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindDraft(ctx, requestID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("submit leave lookup failed", zap.Error(err))
		return false, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, employeeID, lr.StartDate, lr.EndDate, requestID)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return false, err
	}
	if overlap {
		s.logger.Debug("submit leave refused by overlap",
			zap.String("leave_request_id", requestID),
			zap.String("employee_id", employeeID),
		)
		return false, nil
	}

	lt, err := s.types.FindByID(ctx, lr.LeaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Type deleted after drafting: one more guard refusal, not an
			// internal error.
			return false, nil
		}
		s.logger.Error("submit leave type lookup failed", zap.Error(err))
		return false, err
	}
	if lt.DefaultDayAllowance != nil {
		days := policy.InclusiveDayCount(lr.StartDate, lr.EndDate)
		if days > *lt.DefaultDayAllowance {
			s.logger.Debug("submit leave refused by allowance",
				zap.String("leave_request_id", requestID),
				zap.Int("days", days),
				zap.Int("allowance", *lt.DefaultDayAllowance),
			)
			return false, nil
		}
	}

	ok, err := qtx.SubmitDraft(ctx, requestID, employeeID)
	if err != nil {
		s.logger.Error("submit leave transition failed", zap.Error(err))
		return false, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return false, err
	}

	if ok {
		s.logger.Info("submit leave success", zap.String("leave_request_id", requestID))
	}
	return ok, nil
}

func (s *service) Approve(ctx context.Context, requestID, managerID string, note *string) (bool, error) {
	return s.decide(ctx, requestID, managerID, StatusApproved, note)
}

func (s *service) Reject(ctx context.Context, requestID, managerID, note string) (bool, error) {
	if strings.TrimSpace(note) == "" {
		return false, leaveerrors.ErrDecisionNoteRequired
	}
	return s.decide(ctx, requestID, managerID, StatusRejected, &note)
}

func (s *service) decide(ctx context.Context, requestID, managerID, targetStatus string, note *string) (bool, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return false, leaveerrors.ErrInvalidRequestID
	}
	managerUUID, err := uuid.Parse(managerID)
	if err != nil {
		return false, leaveerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var ok bool
	if targetStatus == StatusApproved {
		ok, err = qtx.Approve(ctx, requestID, managerID, note)
	} else {
		ok, err = qtx.Reject(ctx, requestID, managerID, *note)
	}
	if err != nil {
		s.logger.Error("decide leave transition failed",
			zap.String("leave_request_id", requestID),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return false, err
	}
	if !ok {
		// No SUBMITTED row matched; nothing changed, nothing to publish.
		return false, nil
	}

	if s.outbox != nil {
		lr, err := qtx.FindByID(ctx, requestID)
		if err != nil {
			s.logger.Error("decide leave reload failed", zap.Error(err))
			return false, err
		}

		eventType := events.LeaveApprovedEventType
		if targetStatus == StatusRejected {
			eventType = events.LeaveRejectedEventType
		}
		payload, err := json.Marshal(events.LeaveDecidedEvent{
			EventType:    eventType,
			RequestID:    requestID,
			EmployeeID:   lr.EmployeeID.String(),
			ManagerID:    managerUUID.String(),
			Status:       targetStatus,
			DecisionNote: note,
			StartDate:    lr.StartDate.Format("2006-01-02"),
			EndDate:      lr.EndDate.Format("2006-01-02"),
			OccurredAt:   time.Now().UTC(),
		})
		if err != nil {
			return false, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "leave_request",
			AggregateID:   requestID,
			EventType:     eventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed", zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return false, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_request_id", requestID),
		zap.String("status", targetStatus),
		zap.String("manager_id", managerID),
	)
	return true, nil
}

func (s *service) ListMine(ctx context.Context, employeeID string, status *string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	requests, err := s.repo.FindAllByScope(ctx, identity.Self{EmployeeID: employeeID}, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListPendingForCompany(ctx context.Context, managerID, companyID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, leaveerrors.ErrInvalidCompanyID
	}

	submitted := StatusSubmitted
	scope := identity.Manager{ManagerID: managerID, CompanyID: companyID}
	requests, err := s.repo.FindAllByScope(ctx, scope, &submitted)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, callerID string, role identity.Role, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidRequestID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if !identity.CanViewRequest(callerID, role, lr.EmployeeID.String()) {
		return LeaveRequestResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*lr), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID.String(),
		EmployeeID:      lr.EmployeeID.String(),
		LeaveTypeID:     lr.LeaveTypeID.String(),
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		NumberOfDaysOff: policy.InclusiveDayCount(lr.StartDate, lr.EndDate),
		Reason:          lr.Reason,
		Status:          lr.Status,
		DecisionNote:    lr.DecisionNote,
		CreatedAt:       lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.LeaveType != nil {
		resp.LeaveTypeName = lr.LeaveType.Name
	}
	if lr.ManagerID != nil {
		v := lr.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp
}
