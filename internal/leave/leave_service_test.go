package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hrms/internal/identity"
	"hrms/internal/leave"
	leaveerrors "hrms/internal/leave/errors"
	"hrms/internal/leavetype"
	"hrms/internal/messaging/kafka"
	"hrms/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, lr *leave.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findDraftFn            func(ctx context.Context, id, employeeID string) (*leave.LeaveRequest, error)
	findAllByScopeFn       func(ctx context.Context, scope identity.Scope, status *string) ([]leave.LeaveRequest, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	submitDraftFn          func(ctx context.Context, id, employeeID string) (bool, error)
	approveFn              func(ctx context.Context, id, managerID string, note *string) (bool, error)
	rejectFn               func(ctx context.Context, id, managerID, note string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindDraft(ctx context.Context, id, employeeID string) (*leave.LeaveRequest, error) {
	if f.findDraftFn != nil {
		return f.findDraftFn(ctx, id, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAllByScope(ctx context.Context, scope identity.Scope, status *string) ([]leave.LeaveRequest, error) {
	if f.findAllByScopeFn != nil {
		return f.findAllByScopeFn(ctx, scope, status)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) SubmitDraft(ctx context.Context, id, employeeID string) (bool, error) {
	if f.submitDraftFn != nil {
		return f.submitDraftFn(ctx, id, employeeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) Approve(ctx context.Context, id, managerID string, note *string) (bool, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, id, managerID, note)
	}
	return false, nil
}

func (f *fakeLeaveRepository) Reject(ctx context.Context, id, managerID, note string) (bool, error) {
	if f.rejectFn != nil {
		return f.rejectFn(ctx, id, managerID, note)
	}
	return false, nil
}

type fakeTypeRepository struct {
	types map[string]*leavetype.LeaveType
}

func (f *fakeTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error { return nil }
func (f *fakeTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	return nil, nil
}
func (f *fakeTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if lt, ok := f.types[id]; ok {
		return lt, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error { return nil }
func (f *fakeTypeRepository) Delete(ctx context.Context, id string) error               { return nil }

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error   { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, r string) error {
	return nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
	types   *fakeTypeRepository
	outbox  *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	types := &fakeTypeRepository{types: map[string]*leavetype.LeaveType{}}
	outbox := &fakeOutboxRepository{}
	svc := leave.NewService(db, repo, types, outbox)

	return &leaveServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		types:   types,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func annualType(allowance int) *leavetype.LeaveType {
	return &leavetype.LeaveType{
		ID:                  uuid.New(),
		Name:                "Annual",
		DefaultDayAllowance: &allowance,
	}
}

func draftRequest(employeeID uuid.UUID, typeID uuid.UUID, start, end string) *leave.LeaveRequest {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return &leave.LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: typeID,
		StartDate:   s,
		EndDate:     e,
		Reason:      "family trip",
		Status:      leave.StatusDraft,
	}
}

func TestLeaveService_CreateDraft(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	lt := annualType(14)
	deps.types.types[lt.ID.String()] = lt

	var created *leave.LeaveRequest
	deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
		created = lr
		return nil
	}

	resp, err := deps.service.CreateDraft(ctx, uuid.NewString(), leave.CreateLeaveDraftRequest{
		LeaveTypeID: lt.ID.String(),
		StartDate:   "2025-09-22",
		EndDate:     "2025-09-24",
		Reason:      "family trip",
	})

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusDraft, resp.Status)
	assert.Equal(t, 3, resp.NumberOfDaysOff)
	assert.NotNil(t, created)
	assert.Equal(t, leave.StatusDraft, created.Status)
	assert.Nil(t, created.ManagerID)
	assert.Nil(t, created.DecisionNote)
}

func TestLeaveService_CreateDraftUnknownType(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.CreateDraft(ctx, uuid.NewString(), leave.CreateLeaveDraftRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-09-22",
		EndDate:     "2025-09-24",
		Reason:      "family trip",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
}

func TestLeaveService_CreateDraftInvertedRange(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.CreateDraft(ctx, uuid.NewString(), leave.CreateLeaveDraftRequest{
		LeaveTypeID: uuid.NewString(),
		StartDate:   "2025-09-24",
		EndDate:     "2025-09-22",
		Reason:      "family trip",
	})

	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestLeaveService_SubmitSuccess(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	lt := annualType(14)
	deps.types.types[lt.ID.String()] = lt
	employeeID := uuid.New()
	lr := draftRequest(employeeID, lt.ID, "2025-09-22", "2025-09-24")

	deps.repo.findDraftFn = func(ctx context.Context, id, empID string) (*leave.LeaveRequest, error) {
		return lr, nil
	}
	deps.repo.submitDraftFn = func(ctx context.Context, id, empID string) (bool, error) {
		assert.Equal(t, lr.ID.String(), id)
		assert.Equal(t, employeeID.String(), empID)
		return true, nil
	}

	expectTx(t, deps.sqlMock, true)

	ok, err := deps.service.Submit(ctx, lr.ID.String(), employeeID.String())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_SubmitOverlapCollapsesToFalse(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	lt := annualType(14)
	deps.types.types[lt.ID.String()] = lt
	employeeID := uuid.New()
	lr := draftRequest(employeeID, lt.ID, "2025-09-22", "2025-09-24")

	submitCalled := false
	deps.repo.findDraftFn = func(ctx context.Context, id, empID string) (*leave.LeaveRequest, error) {
		return lr, nil
	}
	deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, empID string, s, e time.Time, excludeID string) (bool, error) {
		assert.Equal(t, lr.ID.String(), excludeID)
		return true, nil
	}
	deps.repo.submitDraftFn = func(ctx context.Context, id, empID string) (bool, error) {
		submitCalled = true
		return true, nil
	}

	expectTx(t, deps.sqlMock, false)

	ok, err := deps.service.Submit(ctx, lr.ID.String(), employeeID.String())
	assert.NoError(t, err, "overlap is a guard refusal, not an error")
	assert.False(t, ok)
	assert.False(t, submitCalled, "overlap must short-circuit before the write")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_SubmitOverAllowance(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	lt := annualType(2)
	deps.types.types[lt.ID.String()] = lt
	employeeID := uuid.New()
	lr := draftRequest(employeeID, lt.ID, "2025-09-22", "2025-09-24") // 3 days > 2

	deps.repo.findDraftFn = func(ctx context.Context, id, empID string) (*leave.LeaveRequest, error) {
		return lr, nil
	}

	expectTx(t, deps.sqlMock, false)

	ok, err := deps.service.Submit(ctx, lr.ID.String(), employeeID.String())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_SubmitMissingDraftCollapsesToFalse(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	// Not-found, wrong-owner, and wrong-state all land here via FindDraft.
	ok, err := deps.service.Submit(ctx, uuid.NewString(), uuid.NewString())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_SubmitDeletedTypeCollapsesToFalse(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	// The draft references a type that has since been deleted: no entry in
	// the type repository.
	employeeID := uuid.New()
	lr := draftRequest(employeeID, uuid.New(), "2025-09-22", "2025-09-24")

	deps.repo.findDraftFn = func(ctx context.Context, id, empID string) (*leave.LeaveRequest, error) {
		return lr, nil
	}
	deps.repo.submitDraftFn = func(ctx context.Context, id, empID string) (bool, error) {
		t.Fatal("submit must not be reached when the leave type is gone")
		return false, nil
	}

	expectTx(t, deps.sqlMock, false)

	ok, err := deps.service.Submit(ctx, lr.ID.String(), employeeID.String())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_ApprovePublishesDecision(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	lt := annualType(14)
	employeeID := uuid.New()
	lr := draftRequest(employeeID, lt.ID, "2025-09-22", "2025-09-24")
	lr.Status = leave.StatusSubmitted
	managerID := uuid.NewString()
	note := "ok"

	deps.repo.approveFn = func(ctx context.Context, id, mgrID string, n *string) (bool, error) {
		assert.Equal(t, managerID, mgrID)
		assert.Equal(t, "ok", *n)
		return true, nil
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return lr, nil
	}

	expectTx(t, deps.sqlMock, true)

	ok, err := deps.service.Approve(ctx, lr.ID.String(), managerID, &note)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "hr.leave.decided.v1", deps.outbox.created[0].Topic)
	assert.Equal(t, "leave.approved", deps.outbox.created[0].EventType)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_ApproveAlreadyDecidedIsIdempotentFailure(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.approveFn = func(ctx context.Context, id, mgrID string, n *string) (bool, error) {
		return false, nil // no SUBMITTED row matched
	}

	id := uuid.NewString()
	managerID := uuid.NewString()

	for i := 0; i < 2; i++ {
		expectTx(t, deps.sqlMock, false)
		ok, err := deps.service.Approve(ctx, id, managerID, nil)
		assert.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, deps.outbox.created, "a refused decision must not publish")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_RejectRequiresNote(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	ok, err := deps.service.Reject(ctx, uuid.NewString(), uuid.NewString(), "   ")
	assert.ErrorIs(t, err, leaveerrors.ErrDecisionNoteRequired)
	assert.False(t, ok)
}

func TestLeaveService_ListPendingUsesManagerScope(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	managerID := uuid.NewString()
	companyID := uuid.NewString()

	var gotScope identity.Scope
	var gotStatus *string
	deps.repo.findAllByScopeFn = func(ctx context.Context, scope identity.Scope, status *string) ([]leave.LeaveRequest, error) {
		gotScope = scope
		gotStatus = status
		return nil, nil
	}

	_, err := deps.service.ListPendingForCompany(ctx, managerID, companyID)
	assert.NoError(t, err)
	assert.Equal(t, identity.Manager{ManagerID: managerID, CompanyID: companyID}, gotScope)
	if assert.NotNil(t, gotStatus) {
		assert.Equal(t, leave.StatusSubmitted, *gotStatus)
	}
}

func TestLeaveService_ListPendingValidatesBothIDs(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ListPendingForCompany(ctx, "not-a-uuid", uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidEmployeeID)

	_, err = deps.service.ListPendingForCompany(ctx, uuid.NewString(), "not-a-uuid")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidCompanyID)
}

func TestLeaveService_GetByIDAccessControl(t *testing.T) {
	ctx := context.Background()
	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	owner := uuid.New()
	lr := draftRequest(owner, uuid.New(), "2025-09-22", "2025-09-24")
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return lr, nil
	}

	// Owner sees their own request.
	_, err := deps.service.GetByID(ctx, owner.String(), identity.RoleEmployee, lr.ID.String())
	assert.NoError(t, err)

	// Another employee does not.
	_, err = deps.service.GetByID(ctx, uuid.NewString(), identity.RoleEmployee, lr.ID.String())
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// A manager sees any request.
	_, err = deps.service.GetByID(ctx, uuid.NewString(), identity.RoleManager, lr.ID.String())
	assert.NoError(t, err)
}
