package dbschema

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"crm-server/internal/domain/customer"
	"crm-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Customer{})
}

// Customer represents the database schema for customers
type Customer struct {
	BaseModel
	PublicID     string            `gorm:"uniqueIndex;size:64;not null"`
	Name         string            `gorm:"size:255;not null"`
	Company      string            `gorm:"size:255;not null;default:''"`
	Email        string            `gorm:"size:320;not null;default:''"`
	Phone        string            `gorm:"size:50;not null;default:''"`
	Address      string            `gorm:"type:text;not null;default:''"`
	OwnerID      uint              `gorm:"index:idx_customers_owner;not null;default:0"`
	Tags         pq.StringArray    `gorm:"type:text[]"`
	CustomFields datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "crm_api.customers"
}

// NewSchemaCustomer converts a domain customer into a schema instance.
func NewSchemaCustomer(c *customer.Customer) *Customer {
	if c == nil {
		return nil
	}

	return &Customer{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID:     c.PublicID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		OwnerID:      c.OwnerID,
		Tags:         pq.StringArray(c.Tags),
		CustomFields: datatypes.JSONMap(c.CustomFields),
	}
}

// EtoD converts a schema customer back to the domain representation.
func (c *Customer) EtoD() *customer.Customer {
	if c == nil {
		return nil
	}

	return &customer.Customer{
		ID:           c.ID,
		PublicID:     c.PublicID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		OwnerID:      c.OwnerID,
		Tags:         []string(c.Tags),
		CustomFields: map[string]any(c.CustomFields),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
