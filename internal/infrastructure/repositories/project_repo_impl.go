package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"memeforge.backend/internal/domain/entities"
	domainerrors "memeforge.backend/internal/domain/errors"
	"memeforge.backend/internal/infrastructure/models"
)

// ProjectRepository implements project data operations
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	m := r.toModel(project)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSubdomainTaken
		}
		return err
	}
	project.ID = m.ID
	return nil
}

// FindByID gets a project by ID
func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProjectNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByUserID gets projects for a user with pagination
func (r *ProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Project, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Project
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var projects []*entities.Project
	for _, m := range ms {
		model := m
		projects = append(projects, r.toEntity(&model))
	}

	return projects, total, nil
}

// FindBySubdomain gets a project by its subdomain
func (r *ProjectRepository) FindBySubdomain(ctx context.Context, subdomain string) (*entities.Project, error) {
	var m models.Project
	if err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProjectNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists project changes
func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	m := r.toModel(project)
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":         m.Name,
			"token_symbol": m.TokenSymbol,
			"token_mint":   m.TokenMint,
			"status":       m.Status,
			"published_at": m.PublishedAt,
			"updated_at":   m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) toModel(p *entities.Project) *models.Project {
	m := &models.Project{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Subdomain:   p.Subdomain,
		Status:      string(p.Status),
		PublishedAt: p.PublishedAt.Ptr(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.TokenSymbol.Valid {
		v := p.TokenSymbol.String
		m.TokenSymbol = &v
	}
	if p.TokenMint.Valid {
		v := p.TokenMint.String
		m.TokenMint = &v
	}
	return m
}

func (r *ProjectRepository) toEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Subdomain:   m.Subdomain,
		TokenSymbol: null.StringFromPtr(m.TokenSymbol),
		TokenMint:   null.StringFromPtr(m.TokenMint),
		Status:      entities.ProjectStatus(m.Status),
		PublishedAt: null.TimeFromPtr(m.PublishedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
