package expenditure

import (
	"context"
	"database/sql"

	"hrms/internal/identity"
	"hrms/internal/tenant"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=expenditure_repo.go -destination=mock/expenditure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, er *ExpenditureRequest) error
	FindByID(ctx context.Context, id string) (*ExpenditureRequest, error)
	FindAllByScope(ctx context.Context, scope identity.Scope, status *string) ([]ExpenditureRequest, error)
	Approve(ctx context.Context, id, managerID string, note *string) (bool, error)
	Reject(ctx context.Context, id, managerID string, note *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, er *ExpenditureRequest) error {
	return r.db.WithContext(ctx).Create(er).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ExpenditureRequest, error) {
	var er ExpenditureRequest
	err := r.db.WithContext(ctx).
		Preload("ExpenditureType").
		First(&er, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &er, nil
}

func (r *repository) FindAllByScope(ctx context.Context, scope identity.Scope, status *string) ([]ExpenditureRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("ExpenditureType").
		Scopes(tenant.Visibility(scope))

	if status != nil && *status != "" {
		db = db.Where("status = ?", *status)
	}

	var requests []ExpenditureRequest
	err := db.Order("request_date DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) Approve(ctx context.Context, id, managerID string, note *string) (bool, error) {
	return r.decide(ctx, id, managerID, StatusApproved, note)
}

func (r *repository) Reject(ctx context.Context, id, managerID string, note *string) (bool, error) {
	return r.decide(ctx, id, managerID, StatusRejected, note)
}

// decide is the PENDING -> APPROVED/REJECTED conditional transition. The
// status predicate means an already-decided request matches nothing, so the
// approval_date is written at most once.
func (r *repository) decide(ctx context.Context, id, managerID, targetStatus string, note *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&ExpenditureRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":        targetStatus,
			"manager_id":    managerID,
			"decision_note": note,
			"approval_date": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
