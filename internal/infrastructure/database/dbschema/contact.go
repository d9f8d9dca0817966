package dbschema

import (
	"crm-server/internal/domain/contact"
	"crm-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Contact{})
}

// Contact represents the database schema for customer contacts
type Contact struct {
	BaseModel
	PublicID   string `gorm:"uniqueIndex;size:64;not null"`
	CustomerID uint   `gorm:"index:idx_contacts_customer;not null"`
	FirstName  string `gorm:"size:150;not null;default:''"`
	LastName   string `gorm:"size:150;not null;default:''"`
	Email      string `gorm:"size:320;not null;default:''"`
	Phone      string `gorm:"size:50;not null;default:''"`
	Position   string `gorm:"size:150;not null;default:''"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "crm_api.contacts"
}

// NewSchemaContact converts a domain contact into a schema instance.
func NewSchemaContact(c *contact.Contact) *Contact {
	if c == nil {
		return nil
	}

	return &Contact{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:   c.PublicID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
	}
}

// EtoD converts a schema contact back to the domain representation.
func (c *Contact) EtoD() *contact.Contact {
	if c == nil {
		return nil
	}

	return &contact.Contact{
		ID:         c.ID,
		PublicID:   c.PublicID,
		CustomerID: c.CustomerID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
