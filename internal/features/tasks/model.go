package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/taskmanager/internal/pkg/validator"
)

// Task is a unit of work, optionally filed under a category. CategoryID is
// left out of the stored document when the task has no category.
// @Description Task with its timestamps
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id" example:"507f1f77bcf86cd799439011"`
	Title       string              `bson:"title" json:"title" example:"Write report"`
	Description string              `bson:"description" json:"description" example:"Quarterly numbers"`
	IsCompleted bool                `bson:"isCompleted" json:"isCompleted" example:"false"`
	CategoryID  *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty" swaggertype:"string" example:"507f1f77bcf86cd799439012"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt" example:"2023-01-01T00:00:00Z"`
}

// NewTask is what a create persists.
type NewTask struct {
	Title       string
	Description string
	IsCompleted bool
	CategoryID  *primitive.ObjectID
}

// Patch lists the fields an update touches. Nil pointers are left alone.
// UnsetCategory removes categoryId from the document and wins over
// CategoryID.
type Patch struct {
	Title         *string
	Description   *string
	IsCompleted   *bool
	CategoryID    *primitive.ObjectID
	UnsetCategory bool
}

// Empty reports whether the patch would change nothing besides updatedAt.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsCompleted == nil &&
		p.CategoryID == nil && !p.UnsetCategory
}

// Filter narrows a listing. A nil CategoryID lists everything.
type Filter struct {
	CategoryID *primitive.ObjectID
}

// CreateTaskRequest represents task creation data
// @Description Data required to create a task
type CreateTaskRequest struct {
	Title       validator.Field `json:"title" swaggertype:"string" example:"Write report"`
	Description validator.Field `json:"description" swaggertype:"string" example:"Quarterly numbers"`
	IsCompleted validator.Field `json:"isCompleted" swaggertype:"boolean" example:"false"`
	CategoryID  validator.Field `json:"categoryId" swaggertype:"string" example:"507f1f77bcf86cd799439012"`
}

// UpdateTaskRequest represents a partial task update. Sending categoryId as
// null or "" removes the category.
// @Description Any subset of task fields
type UpdateTaskRequest struct {
	Title       validator.Field `json:"title" swaggertype:"string" example:"Write final report"`
	Description validator.Field `json:"description" swaggertype:"string"`
	IsCompleted validator.Field `json:"isCompleted" swaggertype:"boolean" example:"true"`
	CategoryID  validator.Field `json:"categoryId" swaggertype:"string"`
}
