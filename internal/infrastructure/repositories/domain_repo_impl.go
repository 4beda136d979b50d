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

// DomainRepository implements custom-domain data operations
type DomainRepository struct {
	db *gorm.DB
}

// NewDomainRepository creates a new custom-domain repository
func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

// Create creates a new custom domain
func (r *DomainRepository) Create(ctx context.Context, domain *entities.CustomDomain) error {
	m := r.toModel(domain)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDomainAlreadyExists
		}
		return err
	}
	domain.ID = m.ID
	return nil
}

// FindByID gets a custom domain by ID
func (r *DomainRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.CustomDomain, error) {
	var m models.CustomDomain
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrDomainNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByDomain gets a custom domain by its domain name
func (r *DomainRepository) FindByDomain(ctx context.Context, domain string) (*entities.CustomDomain, error) {
	var m models.CustomDomain
	if err := r.db.WithContext(ctx).Where("domain = ?", domain).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrDomainNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindByProjectID gets all custom domains attached to a project
func (r *DomainRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entities.CustomDomain, error) {
	var ms []models.CustomDomain
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var domains []*entities.CustomDomain
	for _, m := range ms {
		model := m
		domains = append(domains, r.toEntity(&model))
	}
	return domains, nil
}

// FindPending gets domains awaiting DNS verification, oldest check first
func (r *DomainRepository) FindPending(ctx context.Context, limit int) ([]*entities.CustomDomain, error) {
	var ms []models.CustomDomain
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.DomainStatusPending)).
		Order("last_checked_at ASC NULLS FIRST").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var domains []*entities.CustomDomain
	for _, m := range ms {
		model := m
		domains = append(domains, r.toEntity(&model))
	}
	return domains, nil
}

// Update persists custom-domain changes
func (r *DomainRepository) Update(ctx context.Context, domain *entities.CustomDomain) error {
	m := r.toModel(domain)
	result := r.db.WithContext(ctx).Model(&models.CustomDomain{}).
		Where("id = ?", domain.ID).
		Updates(map[string]interface{}{
			"status":          m.Status,
			"last_checked_at": m.LastCheckedAt,
			"verified_at":     m.VerifiedAt,
			"updated_at":      m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrDomainNotFound
	}
	return nil
}

func (r *DomainRepository) toModel(d *entities.CustomDomain) *models.CustomDomain {
	return &models.CustomDomain{
		ID:                d.ID,
		ProjectID:         d.ProjectID,
		Domain:            d.Domain,
		VerificationToken: d.VerificationToken,
		Status:            string(d.Status),
		LastCheckedAt:     d.LastCheckedAt.Ptr(),
		VerifiedAt:        d.VerifiedAt.Ptr(),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (r *DomainRepository) toEntity(m *models.CustomDomain) *entities.CustomDomain {
	return &entities.CustomDomain{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		Domain:            m.Domain,
		VerificationToken: m.VerificationToken,
		Status:            entities.DomainStatus(m.Status),
		LastCheckedAt:     null.TimeFromPtr(m.LastCheckedAt),
		VerifiedAt:        null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
