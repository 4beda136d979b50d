package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
)

// PaymentType represents what a payment purchases
type PaymentType string

const (
	PaymentTypeWebsite PaymentType = "website"
	PaymentTypeDomain  PaymentType = "domain"
)

// PaymentCurrency represents the on-chain settlement currency
type PaymentCurrency string

const (
	CurrencySOL  PaymentCurrency = "SOL"
	CurrencyUSDC PaymentCurrency = "USDC"
)

// Valid reports whether the payment type is a known purchase type.
func (t PaymentType) Valid() bool {
	return t == PaymentTypeWebsite || t == PaymentTypeDomain
}

// Valid reports whether the currency is supported.
func (c PaymentCurrency) Valid() bool {
	return c == CurrencySOL || c == CurrencyUSDC
}

// Payment represents a payment record
type Payment struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               uuid.UUID       `json:"userId"`
	ProjectID            null.String     `json:"projectId,omitempty"`
	PaymentType          PaymentType     `json:"paymentType"`
	Currency             PaymentCurrency `json:"currency"`
	Status               PaymentStatus   `json:"status"`
	ExpectedAmount       decimal.Decimal `json:"expectedAmount"`
	ActualAmount         decimal.Decimal `json:"actualAmount"`
	TransactionSignature null.String     `json:"transactionSignature,omitempty"`
	PayerAddress         null.String     `json:"payerAddress,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
	ConfirmedAt          null.Time       `json:"confirmedAt,omitempty"`
}

// IsConfirmed reports whether the payment has been verified on chain.
func (p *Payment) IsConfirmed() bool {
	return p.Status == PaymentStatusConfirmed
}

// VerifyPaymentInput represents the payment verification request payload
type VerifyPaymentInput struct {
	TransactionSignature string  `json:"transactionSignature" binding:"required"`
	ExpectedAmount       float64 `json:"expectedAmount" binding:"required,gt=0"`
	PaymentType          string  `json:"paymentType" binding:"required,oneof=website domain"`
	Currency             string  `json:"currency" binding:"required,oneof=SOL USDC"`
	ProjectID            string  `json:"projectId"`
	PaymentID            string  `json:"paymentId"`
}

// VerifyPaymentResult represents a successful verification outcome
type VerifyPaymentResult struct {
	PaymentID    uuid.UUID       `json:"paymentId"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
}

// CreatePaymentInput represents a payment intent creation payload
type CreatePaymentInput struct {
	PaymentType    string  `json:"paymentType" binding:"required,oneof=website domain"`
	Currency       string  `json:"currency" binding:"required,oneof=SOL USDC"`
	ExpectedAmount float64 `json:"expectedAmount" binding:"required,gt=0"`
	ProjectID      string  `json:"projectId"`
}
