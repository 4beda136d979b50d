package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"memeforge.backend/internal/domain/entities"
	"memeforge.backend/internal/infrastructure/blockchain"
)

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) FindConfirmedBySignature(ctx context.Context, signature string) (*entities.Payment, error) {
	args := m.Called(ctx, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindConfirmedUnattached(ctx context.Context, userID uuid.UUID, paymentType entities.PaymentType) (*entities.Payment, error) {
	args := m.Called(ctx, userID, paymentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) AttachProject(ctx context.Context, paymentID, projectID uuid.UUID) error {
	args := m.Called(ctx, paymentID, projectID)
	return args.Error(0)
}

func (m *MockPaymentRepository) Confirm(ctx context.Context, id uuid.UUID, signature string, payer string, actualAmount decimal.Decimal, confirmedAt time.Time) error {
	args := m.Called(ctx, id, signature, payer, actualAmount, confirmedAt)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindByWalletAddress(ctx context.Context, walletAddress string) (*entities.User, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) FindBySubdomain(ctx context.Context, subdomain string) (*entities.Project, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// Mock DomainRepository
type MockDomainRepository struct {
	mock.Mock
}

func (m *MockDomainRepository) Create(ctx context.Context, domain *entities.CustomDomain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *MockDomainRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.CustomDomain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CustomDomain), args.Error(1)
}

func (m *MockDomainRepository) FindByDomain(ctx context.Context, domain string) (*entities.CustomDomain, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CustomDomain), args.Error(1)
}

func (m *MockDomainRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.CustomDomain, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CustomDomain), args.Error(1)
}

func (m *MockDomainRepository) FindPending(ctx context.Context, limit int) ([]*entities.CustomDomain, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CustomDomain), args.Error(1)
}

func (m *MockDomainRepository) Update(ctx context.Context, domain *entities.CustomDomain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

// Mock TransactionFetcher
type MockTransactionFetcher struct {
	mock.Mock
}

func (m *MockTransactionFetcher) FetchTransaction(ctx context.Context, signature string) (*blockchain.TransactionView, error) {
	args := m.Called(ctx, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blockchain.TransactionView), args.Error(1)
}

// Mock TXTResolver
type MockTXTResolver struct {
	mock.Mock
}

func (m *MockTXTResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
