package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uniq_orders_active_user"}

	assert.True(t, isUniqueViolation(unique))
	//gormが包んでいても判定できること
	assert.True(t, isUniqueViolation(fmt.Errorf("create order: %w", unique)))

	//外部キー違反など他のSQLSTATEは再検索の対象にしない
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}
