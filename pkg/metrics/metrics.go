package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PaymentVerificationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memeforge",
			Name:      "payment_verification_total",
			Help:      "Total number of payment verification attempts by outcome.",
		},
		[]string{"currency", "payment_type", "outcome"},
	)

	WalletAuthTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memeforge",
			Name:      "wallet_auth_total",
			Help:      "Total number of wallet authentication attempts by outcome.",
		},
		[]string{"outcome"},
	)

	SiteCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memeforge",
			Name:      "site_cache_total",
			Help:      "Rendered site cache lookups by result (hit/miss).",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// MustRegister registers all collectors with the default registry.
// Safe to call more than once.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(PaymentVerificationTotal, WalletAuthTotal, SiteCacheTotal)
	})
}
