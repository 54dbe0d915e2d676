package tasks

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/taskmanager/internal/pkg/validator"
	apperrors "github.com/xyz-asif/taskmanager/pkg/errors"
)

const (
	msgNotFound         = "Task not found."
	msgBadID            = "Task id must be a valid ObjectId."
	msgTitleRequired    = "Title is required."
	msgTitleEmpty       = "Title must be a non-empty string."
	msgDescription      = "Description must be a string."
	msgIsCompleted      = "isCompleted must be a boolean."
	msgCategoryID       = "categoryId must be a valid ObjectId."
	msgCategoryNotFound = "Category not found."
	msgNoFields         = "No valid fields provided for update."
)

// Store is the persistence the service needs. *Repository satisfies it.
type Store interface {
	List(ctx context.Context, filter Filter) ([]Task, error)
	Create(ctx context.Context, in NewTask) (*Task, error)
	Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// CategoryChecker resolves categoryId references at write time.
type CategoryChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store      Store
	categories CategoryChecker
}

func NewService(store Store, categories CategoryChecker) *Service {
	return &Service{store: store, categories: categories}
}

// List accepts an empty categoryID for all tasks.
func (s *Service) List(ctx context.Context, categoryID string) ([]Task, error) {
	var filter Filter
	if categoryID = strings.TrimSpace(categoryID); categoryID != "" {
		oid, err := primitive.ObjectIDFromHex(categoryID)
		if err != nil {
			return nil, apperrors.Validation([]apperrors.FieldError{{Field: "categoryId", Message: msgCategoryID}})
		}
		filter.CategoryID = &oid
	}

	tasks, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return tasks, nil
}

func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	err := validator.New().
		Field("title", req.Title, validator.RequiredTrimmedString(msgTitleRequired, msgTitleRequired)).
		Field("description", req.Description, validator.OptionalString(msgDescription)).
		Field("isCompleted", req.IsCompleted, validator.OptionalStrictBool(msgIsCompleted)).
		Field("categoryId", req.CategoryID, validator.OptionalReference(s.categories.Exists, msgCategoryID, msgCategoryNotFound)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}

	in := NewTask{}
	in.Title, _ = req.Title.AsTrimmedString()
	in.Description, _ = req.Description.AsString()
	in.IsCompleted, _ = req.IsCompleted.AsBool()
	in.CategoryID = reference(req.CategoryID)

	task, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return task, nil
}

// Update applies the fields present in req. Absent fields are untouched and
// a cleared categoryId removes the reference.
func (s *Service) Update(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	err := validator.New().
		Field("id", validator.StringField(id), validator.ObjectID(msgBadID)).
		Field("title", req.Title, validator.OptionalTrimmedString(msgTitleEmpty)).
		Field("description", req.Description, validator.OptionalString(msgDescription)).
		Field("isCompleted", req.IsCompleted, validator.OptionalStrictBool(msgIsCompleted)).
		Field("categoryId", req.CategoryID, validator.OptionalReference(s.categories.Exists, msgCategoryID, msgCategoryNotFound)).
		Validate(ctx)
	if err != nil {
		return nil, err
	}

	patch := buildPatch(req)
	if patch.Empty() {
		return nil, apperrors.BadRequest(msgNoFields)
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	task, err := s.store.Update(ctx, oid, patch)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if task == nil {
		return nil, apperrors.NotFound(msgNotFound)
	}
	return task, nil
}

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

// buildPatch expects an already validated request.
func buildPatch(req UpdateTaskRequest) Patch {
	var patch Patch
	if title, ok := req.Title.AsTrimmedString(); ok {
		patch.Title = &title
	}
	if description, ok := req.Description.AsString(); ok {
		patch.Description = &description
	}
	if completed, ok := req.IsCompleted.AsBool(); ok {
		patch.IsCompleted = &completed
	}
	if req.CategoryID.Cleared() {
		patch.UnsetCategory = true
	} else {
		patch.CategoryID = reference(req.CategoryID)
	}
	return patch
}

func reference(f validator.Field) *primitive.ObjectID {
	if f.Cleared() {
		return nil
	}
	s, ok := f.AsString()
	if !ok {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil
	}
	return &oid
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation([]apperrors.FieldError{{Field: "id", Message: msgBadID}})
	}
	return oid, nil
}
