package repositories

import (
	"context"

	"github.com/google/uuid"

	"memeforge.backend/internal/domain/entities"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
}

// DomainRepository defines the interface for custom-domain data access
type DomainRepository interface {
	Create(ctx context.Context, domain *entities.CustomDomain) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.CustomDomain, error)
	FindByDomain(ctx context.Context, domain string) (*entities.CustomDomain, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.CustomDomain, error)
	FindPending(ctx context.Context, limit int) ([]*entities.CustomDomain, error)
	Update(ctx context.Context, domain *entities.CustomDomain) error
}
