package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/usecases"
)

func confirmedWebsitePayment(userID uuid.UUID) *entities.Payment {
	return &entities.Payment{
		ID:          uuid.New(),
		UserID:      userID,
		PaymentType: entities.PaymentTypeWebsite,
		Status:      entities.PaymentStatusConfirmed,
	}
}

func TestProjectCreate_NormalizesFields(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	paymentRepo := new(MockPaymentRepository)
	uc := usecases.NewProjectUseCase(projectRepo, paymentRepo)
	ctx := context.Background()

	userID := uuid.New()
	payment := confirmedWebsitePayment(userID)
	paymentRepo.On("FindConfirmedUnattached", ctx, userID, entities.PaymentTypeWebsite).Return(payment, nil).Once()
	projectRepo.On("Create", ctx, mock.AnythingOfType("*entities.Project")).Return(nil).Once()
	paymentRepo.On("AttachProject", ctx, payment.ID, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()

	project, err := uc.Create(ctx, userID, &entities.CreateProjectInput{
		Name:        "Doge Season",
		Subdomain:   "DogeSeason",
		TokenSymbol: "doge",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dogeseason", project.Subdomain)
	assert.Equal(t, "DOGE", project.TokenSymbol.String)
	assert.Equal(t, entities.ProjectStatusDraft, project.Status)
	paymentRepo.AssertExpectations(t)
}

func TestProjectCreate_RequiresConfirmedPayment(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	paymentRepo := new(MockPaymentRepository)
	uc := usecases.NewProjectUseCase(projectRepo, paymentRepo)
	ctx := context.Background()

	userID := uuid.New()
	paymentRepo.On("FindConfirmedUnattached", ctx, userID, entities.PaymentTypeWebsite).Return(nil, domainerrors.ErrPaymentNotFound).Once()

	_, err := uc.Create(ctx, userID, &entities.CreateProjectInput{
		Name:      "Doge Season",
		Subdomain: "dogeseason",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPaymentRequired)
	projectRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectGetOwned_RejectsOtherUsers(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	uc := usecases.NewProjectUseCase(projectRepo, new(MockPaymentRepository))
	ctx := context.Background()

	owner := uuid.New()
	projectID := uuid.New()
	projectRepo.On("FindByID", ctx, projectID).Return(&entities.Project{ID: projectID, UserID: owner}, nil).Twice()

	_, err := uc.GetOwned(ctx, uuid.New(), projectID)
	assert.ErrorIs(t, err, domainerrors.ErrProjectNotOwned)

	got, err := uc.GetOwned(ctx, owner, projectID)
	assert.NoError(t, err)
	assert.Equal(t, projectID, got.ID)
}

func TestProjectPublish(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	uc := usecases.NewProjectUseCase(projectRepo, new(MockPaymentRepository))
	ctx := context.Background()

	owner := uuid.New()
	projectID := uuid.New()
	projectRepo.On("FindByID", ctx, projectID).Return(&entities.Project{
		ID:     projectID,
		UserID: owner,
		Status: entities.ProjectStatusDraft,
	}, nil).Once()
	projectRepo.On("Update", ctx, mock.MatchedBy(func(p *entities.Project) bool {
		return p.Status == entities.ProjectStatusPublished && p.PublishedAt.Valid
	})).Return(nil).Once()

	published, err := uc.Publish(ctx, owner, projectID)
	assert.NoError(t, err)
	assert.Equal(t, entities.ProjectStatusPublished, published.Status)
	projectRepo.AssertExpectations(t)
}

func TestProjectPublish_AlreadyPublishedIsNoop(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	uc := usecases.NewProjectUseCase(projectRepo, new(MockPaymentRepository))
	ctx := context.Background()

	owner := uuid.New()
	projectID := uuid.New()
	projectRepo.On("FindByID", ctx, projectID).Return(&entities.Project{
		ID:     projectID,
		UserID: owner,
		Status: entities.ProjectStatusPublished,
	}, nil).Once()

	_, err := uc.Publish(ctx, owner, projectID)
	assert.NoError(t, err)
	projectRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetPublishedBySubdomain(t *testing.T) {
	projectRepo := new(MockProjectRepository)
	uc := usecases.NewProjectUseCase(projectRepo, new(MockPaymentRepository))
	ctx := context.Background()

	projectRepo.On("FindBySubdomain", ctx, "live").Return(&entities.Project{
		Subdomain: "live",
		Status:    entities.ProjectStatusPublished,
	}, nil).Once()
	projectRepo.On("FindBySubdomain", ctx, "draft").Return(&entities.Project{
		Subdomain: "draft",
		Status:    entities.ProjectStatusDraft,
	}, nil).Once()

	got, err := uc.GetPublishedBySubdomain(ctx, "LIVE")
	assert.NoError(t, err)
	assert.Equal(t, "live", got.Subdomain)

	_, err = uc.GetPublishedBySubdomain(ctx, "draft")
	assert.ErrorIs(t, err, domainerrors.ErrSiteNotPublished)
}
