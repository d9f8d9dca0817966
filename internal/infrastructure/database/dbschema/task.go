package dbschema

import (
	"time"

	"crm-server/internal/domain/task"
	"crm-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Task{})
}

// Task represents the database schema for tasks
type Task struct {
	BaseModel
	PublicID    string     `gorm:"uniqueIndex;size:64;not null"`
	Title       string     `gorm:"size:255;not null"`
	Description string     `gorm:"type:text;not null;default:''"`
	Status      string     `gorm:"index:idx_tasks_status;size:20;not null;default:'OPEN'"`
	DueAt       *time.Time `gorm:"index:idx_tasks_due_at"`
	AssigneeID  uint       `gorm:"index:idx_tasks_assignee;not null"`
	CustomerID  *uint
	LeadID      *uint
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "crm_api.tasks"
}

// NewSchemaTask converts a domain task into a schema instance.
func NewSchemaTask(t *task.Task) *Task {
	if t == nil {
		return nil
	}

	return &Task{
		BaseModel: BaseModel{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		},
		PublicID:    t.PublicID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueAt:       t.DueAt,
		AssigneeID:  t.AssigneeID,
		CustomerID:  t.CustomerID,
		LeadID:      t.LeadID,
	}
}

// EtoD converts a schema task back to the domain representation.
func (t *Task) EtoD() *task.Task {
	if t == nil {
		return nil
	}

	return &task.Task{
		ID:          t.ID,
		PublicID:    t.PublicID,
		Title:       t.Title,
		Description: t.Description,
		Status:      task.Status(t.Status),
		DueAt:       t.DueAt,
		AssigneeID:  t.AssigneeID,
		CustomerID:  t.CustomerID,
		LeadID:      t.LeadID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
