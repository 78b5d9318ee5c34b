package expenditure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hrms/internal/company"
	"hrms/internal/events"
	expenditureerrors "hrms/internal/expenditure/errors"
	"hrms/internal/expendituretype"
	"hrms/internal/identity"
	"hrms/internal/messaging/kafka"
	"hrms/internal/policy"
	"hrms/internal/shared/apperror"
	"hrms/internal/shared/contextutil"
	"hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=expenditure_service.go -destination=mock/expenditure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateExpenditureRequest) (ExpenditureResponse, error)
	Approve(ctx context.Context, requestID, managerID string, note *string) (bool, error)
	Reject(ctx context.Context, requestID, managerID string, note *string) (bool, error)
	List(ctx context.Context, scope identity.Scope, status *string) ([]ExpenditureResponse, error)
	ListPendingForCompany(ctx context.Context, managerID, companyID string) ([]ExpenditureResponse, error)
	GetByID(ctx context.Context, callerID string, role identity.Role, id string) (ExpenditureResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	types        expendituretype.Repository
	users        user.Repository
	companies    company.Repository
	outbox       kafka.OutboxRepository
	enforceRange bool
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types expendituretype.Repository,
	users user.Repository,
	companies company.Repository,
	outboxRepo kafka.OutboxRepository,
	enforceRange bool,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("expenditure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expenditure.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		types:        types,
		users:        users,
		companies:    companies,
		outbox:       outboxRepo,
		enforceRange: enforceRange,
		logger:       l,
	}
}

// Create refuses a request whose amount falls outside the type's bounds
// (when enforcement is on) without persisting anything: a range violation
// leaves no row behind.
func (s *service) Create(ctx context.Context, employeeID string, req CreateExpenditureRequest) (ExpenditureResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ExpenditureResponse{}, expenditureerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(req.ExpenditureTypeID)
	if err != nil {
		return ExpenditureResponse{}, expenditureerrors.ErrInvalidExpenditureType
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return ExpenditureResponse{}, apperror.RequiredField("title")
	}
	if !req.Amount.IsPositive() {
		return ExpenditureResponse{}, expenditureerrors.ErrAmountNotPositive
	}

	u, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenditureResponse{}, expenditureerrors.ErrInvalidEmployeeID
		}
		return ExpenditureResponse{}, err
	}
	c, err := s.companies.FindByID(ctx, u.CompanyID.String())
	if err != nil {
		s.logger.Error("create expenditure company lookup failed", zap.Error(err))
		return ExpenditureResponse{}, err
	}
	if !policy.CompanyActive(c.IsActive, c.ContractStartDate, c.ContractEndDate, time.Now().UTC()) {
		s.logger.Warn("create expenditure refused, company inactive",
			zap.String("employee_id", employeeID),
			zap.String("company_id", u.CompanyID.String()),
		)
		return ExpenditureResponse{}, expenditureerrors.ErrCompanyInactive
	}

	et, err := s.types.FindByID(ctx, req.ExpenditureTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenditureResponse{}, expenditureerrors.ErrInvalidExpenditureType
		}
		return ExpenditureResponse{}, err
	}

	if s.enforceRange && !policy.AmountInRange(req.Amount, et.MinPrice, et.MaxPrice) {
		s.logger.Warn("create expenditure refused by price range",
			zap.String("employee_id", employeeID),
			zap.String("expenditure_type", et.Name),
			zap.String("amount", req.Amount.String()),
		)
		if et.MinPrice != nil && req.Amount.LessThan(*et.MinPrice) {
			return ExpenditureResponse{}, expenditureerrors.ErrAmountBelowMinimum
		}
		return ExpenditureResponse{}, expenditureerrors.ErrAmountAboveMaximum
	}

	er := &ExpenditureRequest{
		ID:                uuid.New(),
		EmployeeID:        employeeUUID,
		ExpenditureTypeID: typeUUID,
		ExpenditureType:   et,
		Title:             title,
		Currency:          req.Currency,
		Amount:            req.Amount,
		ImageURL:          req.ImageURL,
		Status:            StatusPending,
		RequestDate:       time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, er); err != nil {
		s.logger.Error("create expenditure persist failed", zap.Error(err))
		return ExpenditureResponse{}, err
	}

	s.logger.Info("create expenditure success",
		zap.String("expenditure_request_id", er.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("amount", er.Amount.String()),
	)
	return mapToResponse(*er), nil
}

func (s *service) Approve(ctx context.Context, requestID, managerID string, note *string) (bool, error) {
	return s.decide(ctx, requestID, managerID, StatusApproved, note)
}

// Reject keeps the note optional; unlike leave rejection, an expenditure
// can be turned down without a written reason.
func (s *service) Reject(ctx context.Context, requestID, managerID string, note *string) (bool, error) {
	return s.decide(ctx, requestID, managerID, StatusRejected, note)
}

func (s *service) decide(ctx context.Context, requestID, managerID, targetStatus string, note *string) (bool, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return false, expenditureerrors.ErrInvalidRequestID
	}
	if _, err := uuid.Parse(managerID); err != nil {
		return false, expenditureerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide expenditure begin tx failed", zap.Error(err))
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var ok bool
	if targetStatus == StatusApproved {
		ok, err = qtx.Approve(ctx, requestID, managerID, note)
	} else {
		ok, err = qtx.Reject(ctx, requestID, managerID, note)
	}
	if err != nil {
		s.logger.Error("decide expenditure transition failed",
			zap.String("expenditure_request_id", requestID),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return false, err
	}
	if !ok {
		return false, nil
	}

	if s.outbox != nil {
		er, err := qtx.FindByID(ctx, requestID)
		if err != nil {
			s.logger.Error("decide expenditure reload failed", zap.Error(err))
			return false, err
		}

		eventType := events.ExpenditureApprovedEventType
		if targetStatus == StatusRejected {
			eventType = events.ExpenditureRejectedEventType
		}
		payload, err := json.Marshal(events.ExpenditureDecidedEvent{
			EventType:    eventType,
			RequestID:    requestID,
			EmployeeID:   er.EmployeeID.String(),
			ManagerID:    managerID,
			Status:       targetStatus,
			DecisionNote: note,
			Amount:       er.Amount.String(),
			OccurredAt:   time.Now().UTC(),
		})
		if err != nil {
			return false, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "expenditure_request",
			AggregateID:   requestID,
			EventType:     eventType,
			Topic:         events.ExpenditureDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide expenditure outbox persist failed", zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide expenditure commit failed", zap.Error(err))
		return false, err
	}

	s.logger.Info("decide expenditure success",
		zap.String("expenditure_request_id", requestID),
		zap.String("status", targetStatus),
		zap.String("manager_id", managerID),
	)
	return true, nil
}

func (s *service) List(ctx context.Context, scope identity.Scope, status *string) ([]ExpenditureResponse, error) {
	requests, err := s.repo.FindAllByScope(ctx, scope, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListPendingForCompany(ctx context.Context, managerID, companyID string) ([]ExpenditureResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, expenditureerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, expenditureerrors.ErrInvalidCompanyID
	}

	pending := StatusPending
	scope := identity.Manager{ManagerID: managerID, CompanyID: companyID}
	requests, err := s.repo.FindAllByScope(ctx, scope, &pending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, callerID string, role identity.Role, id string) (ExpenditureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ExpenditureResponse{}, expenditureerrors.ErrInvalidRequestID
	}

	er, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ExpenditureResponse{}, expenditureerrors.ErrExpenditureNotFound
		}
		return ExpenditureResponse{}, err
	}

	if !identity.CanViewRequest(callerID, role, er.EmployeeID.String()) {
		return ExpenditureResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*er), nil
}

func mapToResponse(er ExpenditureRequest) ExpenditureResponse {
	resp := ExpenditureResponse{
		ID:                er.ID.String(),
		EmployeeID:        er.EmployeeID.String(),
		ExpenditureTypeID: er.ExpenditureTypeID.String(),
		Title:             er.Title,
		Currency:          er.Currency,
		Amount:            er.Amount,
		ImageURL:          er.ImageURL,
		Status:            er.Status,
		RequestDate:       er.RequestDate.Format(time.RFC3339),
		DecisionNote:      er.DecisionNote,
	}
	if er.ExpenditureType != nil {
		resp.ExpenditureTypeName = er.ExpenditureType.Name
	}
	if er.ApprovalDate != nil {
		v := er.ApprovalDate.Format(time.RFC3339)
		resp.ApprovalDate = &v
	}
	if er.ManagerID != nil {
		v := er.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}

func mapToListResponse(requests []ExpenditureRequest) []ExpenditureResponse {
	resp := make([]ExpenditureResponse, len(requests))
	for i, er := range requests {
		resp[i] = mapToResponse(er)
	}
	return resp
}
