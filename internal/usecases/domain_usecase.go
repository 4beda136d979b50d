package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"memeforge.backend/internal/config"
	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/domain/repositories"
	"memeforge.backend/pkg/crypto"
	"memeforge.backend/pkg/logger"
)

// TXTResolver looks up DNS TXT records. *net.Resolver satisfies it.
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// DomainUseCase handles custom-domain registration and DNS verification
type DomainUseCase struct {
	domainRepo  repositories.DomainRepository
	projectRepo repositories.ProjectRepository
	paymentRepo repositories.PaymentRepository
	resolver    TXTResolver
	cfg         config.DomainsConfig
	now         func() time.Time
}

// NewDomainUseCase creates a new custom-domain use case
func NewDomainUseCase(domainRepo repositories.DomainRepository, projectRepo repositories.ProjectRepository, paymentRepo repositories.PaymentRepository, resolver TXTResolver, cfg config.DomainsConfig) *DomainUseCase {
	return &DomainUseCase{
		domainRepo:  domainRepo,
		projectRepo: projectRepo,
		paymentRepo: paymentRepo,
		resolver:    resolver,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Add registers a custom domain for a project and hands back the TXT
// challenge the owner has to publish. A confirmed domain payment not
// yet spent on another project is consumed by the registration.
func (uc *DomainUseCase) Add(ctx context.Context, userID, projectID uuid.UUID, input *entities.AddDomainInput) (*entities.CustomDomain, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerrors.ErrProjectNotOwned
	}

	payment, err := uc.paymentRepo.FindConfirmedUnattached(ctx, userID, entities.PaymentTypeDomain)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentRequired
		}
		return nil, err
	}

	token, err := crypto.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}

	domain := &entities.CustomDomain{
		ID:                uuid.New(),
		ProjectID:         projectID,
		Domain:            strings.ToLower(strings.TrimSuffix(input.Domain, ".")),
		VerificationToken: token,
		Status:            entities.DomainStatusPending,
		CreatedAt:         uc.now(),
		UpdatedAt:         uc.now(),
	}
	if err := uc.domainRepo.Create(ctx, domain); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.AttachProject(ctx, payment.ID, projectID); err != nil {
		logger.WithContext(ctx).Warn("payment attach failed",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}

	logger.WithContext(ctx).Info("custom domain registered",
		zap.String("domain", domain.Domain),
		zap.String("project_id", projectID.String()))
	return domain, nil
}

// ListByProject returns the domains attached to an owned project
func (uc *DomainUseCase) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*entities.CustomDomain, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerrors.ErrProjectNotOwned
	}
	return uc.domainRepo.FindByProjectID(ctx, projectID)
}

// TXTRecordName returns the DNS name the challenge TXT record lives at
func (uc *DomainUseCase) TXTRecordName(domain string) string {
	return uc.cfg.TXTRecordPrefix + "." + domain
}

// Verify checks the DNS TXT challenge for a domain and updates its
// status. A lookup error or missing token leaves the domain pending so
// the background job retries later.
func (uc *DomainUseCase) Verify(ctx context.Context, domain *entities.CustomDomain) (bool, error) {
	log := logger.WithContext(ctx)
	domain.LastCheckedAt = null.TimeFrom(uc.now())
	domain.UpdatedAt = uc.now()

	records, err := uc.resolver.LookupTXT(ctx, uc.TXTRecordName(domain.Domain))
	if err != nil {
		log.Debug("txt lookup failed",
			zap.String("domain", domain.Domain),
			zap.Error(err))
		return false, uc.domainRepo.Update(ctx, domain)
	}

	for _, record := range records {
		if strings.TrimSpace(record) == domain.VerificationToken {
			domain.Status = entities.DomainStatusVerified
			domain.VerifiedAt = null.TimeFrom(uc.now())
			log.Info("custom domain verified", zap.String("domain", domain.Domain))
			return true, uc.domainRepo.Update(ctx, domain)
		}
	}
	return false, uc.domainRepo.Update(ctx, domain)
}

// VerifyOwned runs a verification check on demand for a domain the
// user owns.
func (uc *DomainUseCase) VerifyOwned(ctx context.Context, userID, domainID uuid.UUID) (*entities.CustomDomain, error) {
	domain, err := uc.domainRepo.FindByID(ctx, domainID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projectRepo.FindByID(ctx, domain.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerrors.ErrProjectNotOwned
	}

	if domain.Status != entities.DomainStatusVerified {
		if _, err := uc.Verify(ctx, domain); err != nil {
			return nil, err
		}
	}
	return domain, nil
}

// PendingDomains returns domains still waiting on their TXT challenge
func (uc *DomainUseCase) PendingDomains(ctx context.Context, limit int) ([]*entities.CustomDomain, error) {
	return uc.domainRepo.FindPending(ctx, limit)
}
