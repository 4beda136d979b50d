package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		project_id TEXT,
		payment_type TEXT NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		expected_amount TEXT NOT NULL,
		actual_amount TEXT DEFAULT '0',
		transaction_signature TEXT,
		payer_address TEXT,
		confirmed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_payments_confirmed_signature
		ON payments (transaction_signature)
		WHERE status = 'CONFIRMED';`)
}

func createProjectTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		subdomain TEXT NOT NULL UNIQUE,
		token_symbol TEXT,
		token_mint TEXT,
		status TEXT NOT NULL,
		published_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCustomDomainTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE custom_domains (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		domain TEXT NOT NULL UNIQUE,
		verification_token TEXT NOT NULL,
		status TEXT NOT NULL,
		last_checked_at DATETIME,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
