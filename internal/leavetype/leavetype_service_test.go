package leavetype

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	leavetypeerrors "hrms/internal/leavetype/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepo struct {
	types     []LeaveType
	created   *LeaveType
	createErr error
	findAlls  int
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt *LeaveType) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = lt
	return nil
}

func (f *fakeLeaveTypeRepo) FindAll(ctx context.Context) ([]LeaveType, error) {
	f.findAlls++
	return f.types, nil
}

func (f *fakeLeaveTypeRepo) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	for i := range f.types {
		if f.types[i].ID.String() == id {
			return &f.types[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepo) Update(ctx context.Context, lt *LeaveType) error { return nil }
func (f *fakeLeaveTypeRepo) Delete(ctx context.Context, id string) error     { return nil }

func TestGetAllCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := []LeaveTypeResponse{{ID: uuid.NewString(), Name: "Annual"}}
	payload, _ := json.Marshal(cached)
	mock.ExpectGet(leaveTypeAllKey).SetVal(string(payload))

	repo := &fakeLeaveTypeRepo{}
	svc := NewService(repo, rdb)

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Equal(t, 0, repo.findAlls, "cache hit must not touch the database")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllCacheMissFillsCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	allowance := 14
	repo := &fakeLeaveTypeRepo{
		types: []LeaveType{{ID: uuid.New(), Name: "Annual", DefaultDayAllowance: &allowance}},
	}
	expected := mapToListResponse(repo.types)
	payload, _ := json.Marshal(expected)

	mock.ExpectGet(leaveTypeAllKey).RedisNil()
	mock.ExpectSet(leaveTypeAllKey, payload, 30*time.Minute).SetVal("OK")

	svc := NewService(repo, rdb)

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, repo.findAlls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvalidatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel(leaveTypeAllKey).SetVal(1)

	repo := &fakeLeaveTypeRepo{}
	svc := NewService(repo, rdb)

	resp, err := svc.Create(context.Background(), CreateLeaveTypeRequest{Name: "  Annual "})
	assert.NoError(t, err)
	assert.Equal(t, "Annual", resp.Name)
	assert.NotNil(t, repo.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateName(t *testing.T) {
	repo := &fakeLeaveTypeRepo{
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "uq_leave_types_name"},
	}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateLeaveTypeRequest{Name: "Annual"})
	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(&fakeLeaveTypeRepo{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
}
