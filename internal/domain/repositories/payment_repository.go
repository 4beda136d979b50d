package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"memeforge.backend/internal/domain/entities"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error)

	// FindConfirmedBySignature returns the confirmed payment holding the
	// given transaction signature, or entities' not-found error.
	FindConfirmedBySignature(ctx context.Context, signature string) (*entities.Payment, error)

	// FindConfirmedUnattached returns the oldest confirmed payment of the
	// given type that is not tied to a project yet.
	FindConfirmedUnattached(ctx context.Context, userID uuid.UUID, paymentType entities.PaymentType) (*entities.Payment, error)

	// AttachProject ties a confirmed payment to the project it paid for.
	// The conditional update keeps a payment from funding two projects.
	AttachProject(ctx context.Context, paymentID, projectID uuid.UUID) error

	// Confirm atomically transitions a PENDING payment to CONFIRMED,
	// recording the signature, payer and actual amount. It returns
	// ErrTransactionAlreadyUsed when another request confirmed the same
	// signature first, and ErrPaymentNotFound when the payment is not
	// pending anymore.
	Confirm(ctx context.Context, id uuid.UUID, signature string, payer string, actualAmount decimal.Decimal, confirmedAt time.Time) error
}
