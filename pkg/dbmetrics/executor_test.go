package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExecutor struct {
	DBExecutor
	name string
}

type stubTx struct {
	stubExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &stubExecutor{name: "db"}
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db).(*stubExecutor))
	assert.False(t, IsInTransaction(ctx))

	tx := &stubTx{stubExecutor{name: "tx"}}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db).(*stubTx))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("SELECT id FROM bookings"))
	assert.Equal(t, "update", Operation("  UPDATE bookings SET status = $1"))
	assert.Equal(t, "unknown", Operation(""))
}

var _ TxExecutor = (*Tx)(nil)
var _ DBExecutor = (*DB)(nil)
var _ DBExecutor = (*sql.DB)(nil)
