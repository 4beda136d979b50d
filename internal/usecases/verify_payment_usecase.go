package usecases

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"memeforge.backend/internal/config"
	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/domain/repositories"
	"memeforge.backend/internal/infrastructure/blockchain"
	"memeforge.backend/pkg/logger"
	"memeforge.backend/pkg/metrics"
)

// TransactionFetcher fetches finalized transactions from the chain
type TransactionFetcher interface {
	FetchTransaction(ctx context.Context, signature string) (*blockchain.TransactionView, error)
}

// VerifyPaymentUseCase handles on-chain payment verification
type VerifyPaymentUseCase struct {
	paymentRepo repositories.PaymentRepository
	chain       TransactionFetcher
	cfg         config.SolanaConfig
	now         func() time.Time
}

// NewVerifyPaymentUseCase creates a new payment verification use case
func NewVerifyPaymentUseCase(paymentRepo repositories.PaymentRepository, chain TransactionFetcher, cfg config.SolanaConfig) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		paymentRepo: paymentRepo,
		chain:       chain,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Verify checks a submitted transaction signature against the chain and
// records a confirmed payment when it pays the treasury the right
// amount. Checks run in a fixed order so a reused signature is reported
// as such even when the transaction would also fail a later check.
func (uc *VerifyPaymentUseCase) Verify(ctx context.Context, userID uuid.UUID, input *entities.VerifyPaymentInput) (*entities.VerifyPaymentResult, error) {
	log := logger.WithContext(ctx)
	paymentType := entities.PaymentType(input.PaymentType)
	currency := entities.PaymentCurrency(input.Currency)

	outcome := func(result string) {
		metrics.PaymentVerificationTotal.WithLabelValues(string(currency), string(paymentType), result).Inc()
	}

	// Replay guard first. The conditional confirm below closes the
	// race window this read leaves open.
	_, err := uc.paymentRepo.FindConfirmedBySignature(ctx, input.TransactionSignature)
	if err == nil {
		outcome("replay")
		return nil, domainerrors.ErrTransactionAlreadyUsed
	}
	if !errors.Is(err, domainerrors.ErrPaymentNotFound) {
		return nil, err
	}

	view, err := uc.chain.FetchTransaction(ctx, input.TransactionSignature)
	if err != nil {
		if errors.Is(err, domainerrors.ErrTransactionNotFound) {
			outcome("not_found")
			return nil, domainerrors.ErrTransactionNotFound
		}
		log.Error("transaction fetch failed", zap.Error(err))
		return nil, err
	}

	if view.Failed() {
		outcome("failed_on_chain")
		return nil, domainerrors.ErrTransactionFailed
	}

	if view.BlockTime.IsZero() || uc.now().Sub(view.BlockTime) > uc.cfg.MaxTxAge {
		outcome("too_old")
		return nil, domainerrors.ErrTransactionTooOld
	}

	actualAmount, err := uc.receivedAmount(view, currency, paymentType, input.ExpectedAmount)
	if err != nil {
		outcome("bad_amount")
		return nil, err
	}

	payer := ""
	if len(view.AccountKeys) > 0 {
		payer = view.AccountKeys[0]
	}

	payment, err := uc.pendingPayment(ctx, userID, input, paymentType, currency)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrPaymentNotFound) {
			log.Error("payment create failed", zap.Error(err))
		}
		return nil, err
	}

	if err := uc.paymentRepo.Confirm(ctx, payment.ID, input.TransactionSignature, payer, actualAmount, uc.now()); err != nil {
		if errors.Is(err, domainerrors.ErrTransactionAlreadyUsed) {
			outcome("replay")
			return nil, domainerrors.ErrTransactionAlreadyUsed
		}
		log.Error("payment confirm failed", zap.Error(err),
			zap.String("payment_id", payment.ID.String()))
		return nil, err
	}

	outcome("confirmed")
	log.Info("payment confirmed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("currency", string(currency)),
		zap.String("payment_type", string(paymentType)),
		zap.String("actual_amount", actualAmount.String()))

	return &entities.VerifyPaymentResult{
		PaymentID:    payment.ID,
		ActualAmount: actualAmount,
	}, nil
}

// pendingPayment resolves the PENDING row to confirm. A request that
// names a paymentId reuses the record the client created up front;
// otherwise a fresh one is inserted.
func (uc *VerifyPaymentUseCase) pendingPayment(ctx context.Context, userID uuid.UUID, input *entities.VerifyPaymentInput, paymentType entities.PaymentType, currency entities.PaymentCurrency) (*entities.Payment, error) {
	if input.PaymentID != "" {
		id, err := uuid.Parse(input.PaymentID)
		if err != nil {
			return nil, domainerrors.ErrPaymentNotFound
		}
		payment, err := uc.paymentRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// Another user's payment is indistinguishable from a missing one.
		if payment.UserID != userID {
			return nil, domainerrors.ErrPaymentNotFound
		}
		return payment, nil
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

func (uc *VerifyPaymentUseCase) receivedAmount(view *blockchain.TransactionView, currency entities.PaymentCurrency, paymentType entities.PaymentType, expectedAmount float64) (decimal.Decimal, error) {
	switch currency {
	case entities.CurrencySOL:
		return uc.solReceived(view, expectedAmount)
	case entities.CurrencyUSDC:
		return uc.usdcReceived(view, paymentType)
	default:
		return decimal.Zero, domainerrors.ErrInvalidCurrency
	}
}

// solReceived computes the lamport delta at the treasury account and
// checks it against the caller-declared expected amount.
func (uc *VerifyPaymentUseCase) solReceived(view *blockchain.TransactionView, expectedAmount float64) (decimal.Decimal, error) {
	treasuryIndex := -1
	for i, key := range view.AccountKeys {
		if key == uc.cfg.TreasuryAddress {
			treasuryIndex = i
			break
		}
	}
	if treasuryIndex < 0 || treasuryIndex >= len(view.PreBalances) || treasuryIndex >= len(view.PostBalances) {
		return decimal.Zero, domainerrors.ErrInvalidPaymentAmount
	}

	pre := decimal.NewFromBigInt(new(big.Int).SetUint64(view.PreBalances[treasuryIndex]), 0)
	post := decimal.NewFromBigInt(new(big.Int).SetUint64(view.PostBalances[treasuryIndex]), 0)
	received := post.Sub(pre).Div(decimal.NewFromInt(LamportsPerSOL))

	expected := decimal.NewFromFloat(expectedAmount)
	if !withinTolerance(received, expected) {
		return decimal.Zero, domainerrors.ErrInvalidPaymentAmount
	}
	return received, nil
}

// usdcReceived computes the token balance delta of treasury-owned token
// accounts for the configured mint and checks it against the fixed USD
// price list. Netting pre/post balances covers transfers made through
// inner instructions as well as top-level ones.
func (uc *VerifyPaymentUseCase) usdcReceived(view *blockchain.TransactionView, paymentType entities.PaymentType) (decimal.Decimal, error) {
	pre := uc.treasuryTokenTotal(view.PreTokenBalances)
	post := uc.treasuryTokenTotal(view.PostTokenBalances)
	received := post.Sub(pre)

	expected, ok := usdPrices[paymentType]
	if !ok {
		return decimal.Zero, domainerrors.ErrInvalidPaymentType
	}
	if !withinTolerance(received, expected) {
		return decimal.Zero, domainerrors.ErrInvalidPaymentAmount
	}
	return received, nil
}

func (uc *VerifyPaymentUseCase) treasuryTokenTotal(balances []blockchain.TokenBalanceView) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		if b.Mint != uc.cfg.USDCMint || b.Owner != uc.cfg.TreasuryAddress {
			continue
		}
		raw, err := decimal.NewFromString(b.Amount)
		if err != nil {
			continue
		}
		total = total.Add(raw.Shift(-int32(b.Decimals)))
	}
	return total
}
