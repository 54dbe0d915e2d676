package categories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/taskmanager/internal/pkg/validator"
	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

const (
	msgNotFound  = "Category not found."
	msgBadID     = "Category id must be a valid ObjectId."
	msgNameReq   = "Name is required."
	msgNameEmpty = "Name must be a non-empty string."
)

// Store is the persistence the service needs. *Repository satisfies it.
type Store interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (*Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	categories, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	err := validator.New().
		Field("name", req.Name, validator.RequiredTrimmedString(msgNameReq, msgNameReq)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}

	name, _ := req.Name.AsTrimmedString()
	category, err := s.store.Create(ctx, name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return category, nil
}

// Update renames a category. Name is the only mutable field and is required.
func (s *Service) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	err := validator.New().
		Field("id", validator.StringField(id), validator.ObjectID(msgBadID)).
		Field("name", req.Name, validator.RequiredTrimmedString(msgNameReq, msgNameEmpty)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	name, _ := req.Name.AsTrimmedString()

	category, err := s.store.Update(ctx, oid, Patch{Name: name})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if category == nil {
		return nil, apperrors.NotFound(msgNotFound)
	}
	return category, nil
}

// Delete removes a category without touching tasks that reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := validator.New().
		Field("id", validator.StringField(id), validator.ObjectID(msgBadID)).
		Validate(ctx)
	if err != nil {
		return err
	}

	oid, err := parseID(id)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, oid)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !deleted {
		return apperrors.NotFound(msgNotFound)
	}
	return nil
}

// Exists is exposed for the task service's reference checks.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation([]apperrors.FieldError{{Field: "id", Message: msgBadID}})
	}
	return oid, nil
}
