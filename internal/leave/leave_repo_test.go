package leave_test

import (
	"context"
	"regexp"
	"testing"

	"hrms/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The submit write must execute on the transaction handed to WithTx, never on
// the repository's own pool, or the outbox insert sharing that transaction
// stops being atomic with the status flip.
func TestSubmitDraftRunsOnProvidedTransaction(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := leave.NewRepository(gormDB)
	ok, err := repo.WithTx(tx).SubmitDraft(context.Background(), uuid.NewString(), uuid.NewString())

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, tx.Commit())
	assert.NoError(t, txMock.ExpectationsWereMet())
	// The pool saw no statement at all.
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestApproveRunsOnProvidedTransaction(t *testing.T) {
	poolDB, poolMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer poolDB.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_requests" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := leave.NewRepository(gormDB)
	ok, err := repo.WithTx(tx).Approve(context.Background(), uuid.NewString(), uuid.NewString(), nil)

	assert.NoError(t, err)
	assert.True(t, ok)
	// Rolling back must undo the write, which it can only do when the write
	// went through this transaction.
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
