package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Subdomain   string    `gorm:"type:varchar(63);not null;uniqueIndex"`
	TokenSymbol *string   `gorm:"type:varchar(20)"`
	TokenMint   *string   `gorm:"type:varchar(64)"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type CustomDomain struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProjectID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Domain            string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	VerificationToken string    `gorm:"type:varchar(64);not null"`
	Status            string    `gorm:"type:varchar(20);not null;index"`
	LastCheckedAt     *time.Time
	VerifiedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`

	Project Project `gorm:"foreignKey:ProjectID"`
}
