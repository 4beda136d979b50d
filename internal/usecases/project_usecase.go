package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/domain/repositories"
	"memeforge.backend/pkg/logger"
)

// ProjectUseCase handles site project management
type ProjectUseCase struct {
	projectRepo repositories.ProjectRepository
	paymentRepo repositories.PaymentRepository
	now         func() time.Time
}

// NewProjectUseCase creates a new project use case
func NewProjectUseCase(projectRepo repositories.ProjectRepository, paymentRepo repositories.PaymentRepository) *ProjectUseCase {
	return &ProjectUseCase{projectRepo: projectRepo, paymentRepo: paymentRepo, now: time.Now}
}

// Create creates a draft project on a unique subdomain. A confirmed
// website payment that has not been spent on another project is
// consumed by the creation.
func (uc *ProjectUseCase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	payment, err := uc.paymentRepo.FindConfirmedUnattached(ctx, userID, entities.PaymentTypeWebsite)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPaymentNotFound) {
			return nil, domainerrors.ErrPaymentRequired
		}
		return nil, err
	}

	project := &entities.Project{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      input.Name,
		Subdomain: strings.ToLower(input.Subdomain),
		Status:    entities.ProjectStatusDraft,
		CreatedAt: uc.now(),
		UpdatedAt: uc.now(),
	}
	if input.TokenSymbol != "" {
		project.TokenSymbol = null.StringFrom(strings.ToUpper(input.TokenSymbol))
	}
	if input.TokenMint != "" {
		project.TokenMint = null.StringFrom(input.TokenMint)
	}

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.AttachProject(ctx, payment.ID, project.ID); err != nil {
		logger.WithContext(ctx).Warn("payment attach failed",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}

	logger.WithContext(ctx).Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("subdomain", project.Subdomain))
	return project, nil
}

// GetOwned returns a project after checking ownership
func (uc *ProjectUseCase) GetOwned(ctx context.Context, userID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domainerrors.ErrProjectNotOwned
	}
	return project, nil
}

// ListByUser returns the user's projects, newest first
func (uc *ProjectUseCase) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error) {
	return uc.projectRepo.FindByUserID(ctx, userID, limit, offset)
}

// Publish flips a draft project live
func (uc *ProjectUseCase) Publish(ctx context.Context, userID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := uc.GetOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status == entities.ProjectStatusPublished {
		return project, nil
	}

	project.Status = entities.ProjectStatusPublished
	project.PublishedAt = null.TimeFrom(uc.now())
	project.UpdatedAt = uc.now()
	if err := uc.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetPublishedBySubdomain returns a published project for rendering
func (uc *ProjectUseCase) GetPublishedBySubdomain(ctx context.Context, subdomain string) (*entities.Project, error) {
	project, err := uc.projectRepo.FindBySubdomain(ctx, strings.ToLower(subdomain))
	if err != nil {
		return nil, err
	}
	if project.Status != entities.ProjectStatusPublished {
		return nil, domainerrors.ErrSiteNotPublished
	}
	return project, nil
}
