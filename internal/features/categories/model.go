// ================== internal/features/categories/model.go ==================
package categories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/taskmanager/internal/pkg/validator"
)

// Category groups tasks. Names are not unique.
// @Description Category with its timestamps
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id" example:"507f1f77bcf86cd799439011"`
	Name      string             `bson:"name" json:"name" example:"Work"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt" example:"2023-01-01T00:00:00Z"`
}

// Patch is the set of fields an update replaces.
type Patch struct {
	Name string
}

// CreateCategoryRequest represents category creation data
// @Description Data required to create a category
type CreateCategoryRequest struct {
	Name validator.Field `json:"name" swaggertype:"string" example:"Work"`
}

// UpdateCategoryRequest represents category update data
// @Description Data required to rename a category
type UpdateCategoryRequest struct {
	Name validator.Field `json:"name" swaggertype:"string" example:"Personal"`
}
