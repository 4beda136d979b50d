package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/domain/repositories"
)

// PaymentUseCase handles payment reads and intent creation
type PaymentUseCase struct {
	paymentRepo repositories.PaymentRepository
	now         func() time.Time
}

// NewPaymentUseCase creates a new payment use case
func NewPaymentUseCase(paymentRepo repositories.PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{paymentRepo: paymentRepo, now: time.Now}
}

// CreateIntent records a pending payment before the wallet flow starts
func (uc *PaymentUseCase) CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentInput) (*entities.Payment, error) {
	paymentType := entities.PaymentType(input.PaymentType)
	currency := entities.PaymentCurrency(input.Currency)
	if !paymentType.Valid() {
		return nil, domainerrors.ErrInvalidPaymentType
	}
	if !currency.Valid() {
		return nil, domainerrors.ErrInvalidCurrency
	}

	payment := &entities.Payment{
		ID:             uuid.New(),
		UserID:         userID,
		PaymentType:    paymentType,
		Currency:       currency,
		Status:         entities.PaymentStatusPending,
		ExpectedAmount: decimal.NewFromFloat(input.ExpectedAmount),
		ActualAmount:   decimal.Zero,
		CreatedAt:      uc.now(),
		UpdatedAt:      uc.now(),
	}
	if input.ProjectID != "" {
		payment.ProjectID = null.StringFrom(input.ProjectID)
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// GetByID returns a payment owned by the given user
func (uc *PaymentUseCase) GetByID(ctx context.Context, userID, paymentID uuid.UUID) (*entities.Payment, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domainerrors.ErrPaymentNotFound
	}
	return payment, nil
}

// ListByUser returns the user's payments, newest first
func (uc *PaymentUseCase) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	return uc.paymentRepo.FindByUserID(ctx, userID, limit, offset)
}
