package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/infrastructure/blockchain"
	"memeforge.backend/internal/interfaces/http/middleware"
)

// Function-field stubs for the repository interfaces so handler tests
// can drive real usecases without a database.

type paymentRepoStub struct {
	createFn         func(ctx context.Context, payment *entities.Payment) error
	findByIDFn       func(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	findByUserIDFn   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error)
	findConfirmedFn  func(ctx context.Context, signature string) (*entities.Payment, error)
	findUnattachedFn func(ctx context.Context, userID uuid.UUID, paymentType entities.PaymentType) (*entities.Payment, error)
	attachProjectFn  func(ctx context.Context, paymentID, projectID uuid.UUID) error
	confirmFn        func(ctx context.Context, id uuid.UUID, signature, payer string, actualAmount decimal.Decimal, confirmedAt time.Time) error
}

func (s paymentRepoStub) Create(ctx context.Context, payment *entities.Payment) error {
	return s.createFn(ctx, payment)
}
func (s paymentRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	return s.findByIDFn(ctx, id)
}
func (s paymentRepoStub) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	return s.findByUserIDFn(ctx, userID, limit, offset)
}
func (s paymentRepoStub) FindConfirmedBySignature(ctx context.Context, signature string) (*entities.Payment, error) {
	return s.findConfirmedFn(ctx, signature)
}
func (s paymentRepoStub) FindConfirmedUnattached(ctx context.Context, userID uuid.UUID, paymentType entities.PaymentType) (*entities.Payment, error) {
	return s.findUnattachedFn(ctx, userID, paymentType)
}
func (s paymentRepoStub) AttachProject(ctx context.Context, paymentID, projectID uuid.UUID) error {
	return s.attachProjectFn(ctx, paymentID, projectID)
}
func (s paymentRepoStub) Confirm(ctx context.Context, id uuid.UUID, signature, payer string, actualAmount decimal.Decimal, confirmedAt time.Time) error {
	return s.confirmFn(ctx, id, signature, payer, actualAmount, confirmedAt)
}

type projectRepoStub struct {
	createFn          func(ctx context.Context, project *entities.Project) error
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	findByUserIDFn    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error)
	findBySubdomainFn func(ctx context.Context, subdomain string) (*entities.Project, error)
	updateFn          func(ctx context.Context, project *entities.Project) error
}

func (s projectRepoStub) Create(ctx context.Context, project *entities.Project) error {
	return s.createFn(ctx, project)
}
func (s projectRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	return s.findByIDFn(ctx, id)
}
func (s projectRepoStub) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error) {
	return s.findByUserIDFn(ctx, userID, limit, offset)
}
func (s projectRepoStub) FindBySubdomain(ctx context.Context, subdomain string) (*entities.Project, error) {
	return s.findBySubdomainFn(ctx, subdomain)
}
func (s projectRepoStub) Update(ctx context.Context, project *entities.Project) error {
	return s.updateFn(ctx, project)
}

type domainRepoStub struct {
	createFn          func(ctx context.Context, domain *entities.CustomDomain) error
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*entities.CustomDomain, error)
	findByDomainFn    func(ctx context.Context, domain string) (*entities.CustomDomain, error)
	findByProjectIDFn func(ctx context.Context, projectID uuid.UUID) ([]*entities.CustomDomain, error)
	findPendingFn     func(ctx context.Context, limit int) ([]*entities.CustomDomain, error)
	updateFn          func(ctx context.Context, domain *entities.CustomDomain) error
}

func (s domainRepoStub) Create(ctx context.Context, domain *entities.CustomDomain) error {
	return s.createFn(ctx, domain)
}
func (s domainRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.CustomDomain, error) {
	return s.findByIDFn(ctx, id)
}
func (s domainRepoStub) FindByDomain(ctx context.Context, domain string) (*entities.CustomDomain, error) {
	return s.findByDomainFn(ctx, domain)
}
func (s domainRepoStub) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.CustomDomain, error) {
	return s.findByProjectIDFn(ctx, projectID)
}
func (s domainRepoStub) FindPending(ctx context.Context, limit int) ([]*entities.CustomDomain, error) {
	return s.findPendingFn(ctx, limit)
}
func (s domainRepoStub) Update(ctx context.Context, domain *entities.CustomDomain) error {
	return s.updateFn(ctx, domain)
}

type userRepoStub struct {
	createFn     func(ctx context.Context, user *entities.User) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	findByAddrFn func(ctx context.Context, walletAddress string) (*entities.User, error)
}

func (s userRepoStub) Create(ctx context.Context, user *entities.User) error {
	return s.createFn(ctx, user)
}
func (s userRepoStub) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.findByIDFn(ctx, id)
}
func (s userRepoStub) FindByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error) {
	return s.findByAddrFn(ctx, walletAddress)
}

type fetcherStub struct {
	fetchFn func(ctx context.Context, signature string) (*blockchain.TransactionView, error)
}

func (s fetcherStub) FetchTransaction(ctx context.Context, signature string) (*blockchain.TransactionView, error) {
	return s.fetchFn(ctx, signature)
}

type resolverStub struct {
	lookupFn func(ctx context.Context, name string) ([]string, error)
}

func (s resolverStub) LookupTXT(ctx context.Context, name string) ([]string, error) {
	return s.lookupFn(ctx, name)
}

// withUser simulates the auth middleware for protected handlers.
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}
