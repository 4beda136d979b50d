package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:             payment.ID,
		UserID:         payment.UserID,
		PaymentType:    string(payment.PaymentType),
		Currency:       string(payment.Currency),
		Status:         string(payment.Status),
		ExpectedAmount: payment.ExpectedAmount.String(),
		ActualAmount:   payment.ActualAmount.String(),
		CreatedAt:      payment.CreatedAt,
		UpdatedAt:      payment.UpdatedAt,
	}
	if payment.ProjectID.Valid {
		projectID, err := uuid.Parse(payment.ProjectID.String)
		if err != nil {
			return domainerrors.ErrInvalidInput
		}
		m.ProjectID = &projectID
	}
	if payment.TransactionSignature.Valid {
		sig := payment.TransactionSignature.String
		m.TransactionSignature = &sig
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	return nil
}

// FindByID gets a payment by ID
func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByUserID gets payments for a user with pagination
func (r *PaymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var payments []*entities.Payment
	for _, m := range ms {
		model := m
		payments = append(payments, r.toEntity(&model))
	}

	return payments, total, nil
}

// FindConfirmedBySignature gets the confirmed payment for a signature
func (r *PaymentRepository) FindConfirmedBySignature(ctx context.Context, signature string) (*entities.Payment, error) {
	var m models.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_signature = ? AND status = ?", signature, string(entities.PaymentStatusConfirmed)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindConfirmedUnattached gets the oldest confirmed payment of a type
// not yet spent on a project
func (r *PaymentRepository) FindConfirmedUnattached(ctx context.Context, userID uuid.UUID, paymentType entities.PaymentType) (*entities.Payment, error) {
	var m models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND payment_type = ? AND status = ? AND project_id IS NULL",
			userID, string(paymentType), string(entities.PaymentStatusConfirmed)).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrPaymentNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// AttachProject ties a confirmed unattached payment to a project
func (r *PaymentRepository) AttachProject(ctx context.Context, paymentID, projectID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ? AND project_id IS NULL", paymentID, string(entities.PaymentStatusConfirmed)).
		Updates(map[string]interface{}{
			"project_id": projectID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}
	return nil
}

// Confirm transitions a pending payment to confirmed. The conditional
// WHERE clause plus the partial unique index on confirmed signatures is
// what keeps two racing requests from confirming the same signature.
func (r *PaymentRepository) Confirm(ctx context.Context, id uuid.UUID, signature string, payer string, actualAmount decimal.Decimal, confirmedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, string(entities.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"status":                string(entities.PaymentStatusConfirmed),
			"transaction_signature": signature,
			"payer_address":         payer,
			"actual_amount":         actualAmount.String(),
			"confirmed_at":          confirmedAt,
			"updated_at":            time.Now(),
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrTransactionAlreadyUsed
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPaymentNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	expected, _ := decimal.NewFromString(m.ExpectedAmount)
	actual, _ := decimal.NewFromString(m.ActualAmount)

	p := &entities.Payment{
		ID:                   m.ID,
		UserID:               m.UserID,
		PaymentType:          entities.PaymentType(m.PaymentType),
		Currency:             entities.PaymentCurrency(m.Currency),
		Status:               entities.PaymentStatus(m.Status),
		ExpectedAmount:       expected,
		ActualAmount:         actual,
		TransactionSignature: null.StringFromPtr(m.TransactionSignature),
		PayerAddress:         null.StringFromPtr(m.PayerAddress),
		ConfirmedAt:          null.TimeFromPtr(m.ConfirmedAt),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.ProjectID != nil {
		p.ProjectID = null.StringFrom(m.ProjectID.String())
	}
	return p
}
