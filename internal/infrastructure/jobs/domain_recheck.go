package jobs

import (
	"context"
	"log"
	"time"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/usecases"
)

type domainVerifier interface {
	PendingDomains(ctx context.Context, limit int) ([]*entities.CustomDomain, error)
	Verify(ctx context.Context, domain *entities.CustomDomain) (bool, error)
}

// DomainRecheckJob periodically retries DNS verification for pending
// custom domains.
type DomainRecheckJob struct {
	domains  domainVerifier
	interval time.Duration
	stop     chan struct{}
}

func NewDomainRecheckJob(domains *usecases.DomainUseCase, interval time.Duration) *DomainRecheckJob {
	return &DomainRecheckJob{
		domains:  domains,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *DomainRecheckJob) Start(ctx context.Context) {
	log.Println("🕐 Starting domain recheck job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Domain recheck job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Domain recheck job stopped")
			return
		case <-ticker.C:
			j.recheckPendingDomains(ctx)
		}
	}
}

func (j *DomainRecheckJob) Stop() {
	close(j.stop)
}

func (j *DomainRecheckJob) recheckPendingDomains(ctx context.Context) {
	pending, err := j.domains.PendingDomains(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching pending domains: %v", err)
		return
	}

	if len(pending) == 0 {
		return
	}

	log.Printf("🔄 Rechecking %d pending domains...", len(pending))

	verified := 0
	for _, domain := range pending {
		ok, err := j.domains.Verify(ctx, domain)
		if err != nil {
			log.Printf("❌ Error verifying domain %s: %v", domain.Domain, err)
			continue
		}
		if ok {
			verified++
		}
	}

	if verified > 0 {
		log.Printf("✅ Verified %d domains", verified)
	}
}
