package dbschema

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"crm-server/internal/domain/lead"
	"crm-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Lead{})
}

// Lead represents the database schema for leads
type Lead struct {
	BaseModel
	PublicID       string            `gorm:"uniqueIndex;size:64;not null"`
	Title          string            `gorm:"size:255;not null"`
	Status         string            `gorm:"index:idx_leads_status;size:20;not null;default:'NEW'"`
	Source         string            `gorm:"size:100;not null;default:''"`
	EstimatedValue decimal.Decimal   `gorm:"type:numeric(18,2);not null;default:0"`
	ContactName    string            `gorm:"size:255;not null;default:''"`
	ContactEmail   string            `gorm:"size:320;not null;default:''"`
	ContactPhone   string            `gorm:"size:50;not null;default:''"`
	Notes          string            `gorm:"type:text;not null;default:''"`
	CustomerID     *uint             `gorm:"index:idx_leads_customer"`
	OwnerID        uint              `gorm:"index:idx_leads_owner;not null;default:0"`
	CustomFields   datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "crm_api.leads"
}

// NewSchemaLead converts a domain lead into a schema instance.
func NewSchemaLead(l *lead.Lead) *Lead {
	if l == nil {
		return nil
	}

	return &Lead{
		BaseModel: BaseModel{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		},
		PublicID:       l.PublicID,
		Title:          l.Title,
		Status:         string(l.Status),
		Source:         l.Source,
		EstimatedValue: l.EstimatedValue,
		ContactName:    l.ContactName,
		ContactEmail:   l.ContactEmail,
		ContactPhone:   l.ContactPhone,
		Notes:          l.Notes,
		CustomerID:     l.CustomerID,
		OwnerID:        l.OwnerID,
		CustomFields:   datatypes.JSONMap(l.CustomFields),
	}
}

// EtoD converts a schema lead back to the domain representation.
func (l *Lead) EtoD() *lead.Lead {
	if l == nil {
		return nil
	}

	return &lead.Lead{
		ID:             l.ID,
		PublicID:       l.PublicID,
		Title:          l.Title,
		Status:         lead.Status(l.Status),
		Source:         l.Source,
		EstimatedValue: l.EstimatedValue,
		ContactName:    l.ContactName,
		ContactEmail:   l.ContactEmail,
		ContactPhone:   l.ContactPhone,
		Notes:          l.Notes,
		CustomerID:     l.CustomerID,
		OwnerID:        l.OwnerID,
		CustomFields:   map[string]any(l.CustomFields),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
