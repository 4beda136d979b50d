package usecases

import (
	"github.com/shopspring/decimal"

	"memeforge.backend/internal/domain/entities"
)

// Payment verification parameters
const (
	// AmountTolerance is the relative slack allowed between the
	// expected and on-chain amount, covering wallet rounding and
	// priority fee drift.
	AmountTolerance = 0.05

	// LamportsPerSOL converts raw lamport balances to SOL.
	LamportsPerSOL = 1_000_000_000
)

// usdPrices is the server-side price list for stablecoin payments. The
// client-supplied expected amount is ignored for USDC so a tampered
// request cannot buy below list price.
var usdPrices = map[entities.PaymentType]decimal.Decimal{
	entities.PaymentTypeWebsite: decimal.NewFromInt(20),
	entities.PaymentTypeDomain:  decimal.NewFromInt(5),
}

var tolerance = decimal.NewFromFloat(AmountTolerance)

// withinTolerance reports whether actual is within the relative
// tolerance band around expected. The band is inclusive at both edges.
func withinTolerance(actual, expected decimal.Decimal) bool {
	if expected.IsZero() {
		return false
	}
	diff := actual.Sub(expected).Abs()
	return diff.LessThanOrEqual(expected.Mul(tolerance))
}
