package leave

import (
	"context"
	"database/sql"
	"time"

	"hrms/internal/identity"
	"hrms/internal/tenant"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindDraft(ctx context.Context, id, employeeID string) (*LeaveRequest, error)
	FindAllByScope(ctx context.Context, scope identity.Scope, status *string) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error)
	SubmitDraft(ctx context.Context, id, employeeID string) (bool, error)
	Approve(ctx context.Context, id, managerID string, note *string) (bool, error)
	Reject(ctx context.Context, id, managerID, note string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx, so callers can put
// the conditional transition and the outbox insert in one transaction.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{Logger: r.db.Logger})
	if err != nil {
		// Must not fall back to the pool: surface the error on first use.
		broken := r.db.Session(&gorm.Session{NewDB: true})
		_ = broken.AddError(err)
		return &repository{db: broken}
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindDraft(ctx context.Context, id, employeeID string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusDraft).
		First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindAllByScope(ctx context.Context, scope identity.Scope, status *string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("LeaveType").
		Scopes(tenant.Visibility(scope))

	if status != nil && *status != "" {
		db = db.Where("status = ?", *status)
	}

	var requests []LeaveRequest
	err := db.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusSubmitted, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)

	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

// SubmitDraft is the DRAFT -> SUBMITTED transition. The compound predicate
// makes the write conditional: a concurrent submit of the same draft can
// match at most once, and a request that is missing, foreign, or already
// submitted simply matches nothing.
func (r *repository) SubmitDraft(ctx context.Context, id, employeeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusDraft).
		Update("status", StatusSubmitted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Approve(ctx context.Context, id, managerID string, note *string) (bool, error) {
	return r.decide(ctx, id, managerID, StatusApproved, note)
}

func (r *repository) Reject(ctx context.Context, id, managerID, note string) (bool, error) {
	return r.decide(ctx, id, managerID, StatusRejected, &note)
}

func (r *repository) decide(ctx context.Context, id, managerID, targetStatus string, note *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusSubmitted).
		Updates(map[string]interface{}{
			"status":        targetStatus,
			"manager_id":    managerID,
			"decision_note": note,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
