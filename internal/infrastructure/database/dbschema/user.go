package dbschema

import (
	"crm-server/internal/domain"
	"crm-server/internal/domain/user"
	"crm-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted user schema with local credentials.
type User struct {
	BaseModel
	PublicID     string `gorm:"uniqueIndex;size:64;not null"`
	Username     string `gorm:"uniqueIndex;size:150;not null"`
	Email        string `gorm:"uniqueIndex;size:320;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	FirstName    string `gorm:"size:150;not null;default:''"`
	LastName     string `gorm:"size:150;not null;default:''"`
	Role         string `gorm:"size:20;not null;default:'SALES_REP'"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "crm_api.users"
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:     u.PublicID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		Active:       u.Active,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:           u.ID,
		PublicID:     u.PublicID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         domain.Role(u.Role),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
