package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment rows carry a partial unique index on transaction_signature
// restricted to confirmed rows:
//
//	CREATE UNIQUE INDEX idx_payments_confirmed_signature
//	    ON payments (transaction_signature)
//	    WHERE status = 'CONFIRMED';
//
// GORM cannot express partial indexes in tags, so the index is created
// in migrations (see cmd/server). It is what makes signature replay
// protection hold under concurrent verification requests.
type Payment struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProjectID            *uuid.UUID `gorm:"type:uuid;index"` // Nullable
	PaymentType          string     `gorm:"type:varchar(20);not null"`
	Currency             string     `gorm:"type:varchar(10);not null"`
	Status               string     `gorm:"type:varchar(20);not null;index"`
	ExpectedAmount       string     `gorm:"type:varchar(100);not null"` // Decimal
	ActualAmount         string     `gorm:"type:varchar(100);default:'0'"`
	TransactionSignature *string    `gorm:"type:varchar(128);index"`
	PayerAddress         *string    `gorm:"type:varchar(64)"`
	ConfirmedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}
