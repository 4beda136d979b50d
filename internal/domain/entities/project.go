package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProjectStatus represents the publication state of a site
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
)

// Project represents a generated meme-coin website
type Project struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	Name        string        `json:"name"`
	Subdomain   string        `json:"subdomain"`
	TokenSymbol null.String   `json:"tokenSymbol,omitempty"`
	TokenMint   null.String   `json:"tokenMint,omitempty"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PublishedAt null.Time     `json:"publishedAt,omitempty"`
}

// DomainStatus represents the verification state of a custom domain
type DomainStatus string

const (
	DomainStatusPending  DomainStatus = "PENDING"
	DomainStatusVerified DomainStatus = "VERIFIED"
	DomainStatusFailed   DomainStatus = "FAILED"
)

// CustomDomain represents a user-supplied domain attached to a project
type CustomDomain struct {
	ID                uuid.UUID    `json:"id"`
	ProjectID         uuid.UUID    `json:"projectId"`
	Domain            string       `json:"domain"`
	VerificationToken string       `json:"verificationToken"`
	Status            DomainStatus `json:"status"`
	LastCheckedAt     null.Time    `json:"lastCheckedAt,omitempty"`
	VerifiedAt        null.Time    `json:"verifiedAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// CreateProjectInput represents a project creation payload
type CreateProjectInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Subdomain   string `json:"subdomain" binding:"required,min=3,max=63,hostname_rfc1123"`
	TokenSymbol string `json:"tokenSymbol"`
	TokenMint   string `json:"tokenMint"`
}

// AddDomainInput represents a custom-domain registration payload
type AddDomainInput struct {
	Domain string `json:"domain" binding:"required,fqdn"`
}
