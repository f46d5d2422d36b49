package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

type ClassService struct {
	classRepo ClassStore
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewClassService(classRepo ClassStore, logger *zap.Logger) *ClassService {
	return &ClassService{
		classRepo: classRepo,
		validate:  validator.New(),
		logger:    logger,
	}
}

// CreateClass validates the form and creates a class.
func (s *ClassService) CreateClass(ctx context.Context, form *model.ClassForm) (*model.Class, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("validate class: %w", err)
	}

	existing, err := s.classRepo.GetByName(ctx, form.Name)
	if err != nil {
		return nil, fmt.Errorf("get class by name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("class %q already exists", form.Name)
	}

	class := &model.Class{
		Name:  form.Name,
		Level: form.Level,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.logger.Info("Class created",
		zap.String("class_id", class.ID.String()),
		zap.String("name", class.Name))

	return class, nil
}

// GetClass returns a class by id.
func (s *ClassService) GetClass(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	return class, nil
}

// GetClassByName returns a class by its exact name.
func (s *ClassService) GetClassByName(ctx context.Context, name string) (*model.Class, error) {
	class, err := s.classRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get class by name: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}
	return class, nil
}

// ListClasses returns every class.
func (s *ClassService) ListClasses(ctx context.Context) ([]*model.Class, error) {
	return s.classRepo.GetAll(ctx)
}

// DeleteClass removes a class with its slots and sessions.
func (s *ClassService) DeleteClass(ctx context.Context, id uuid.UUID) error {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return ErrClassNotFound
	}

	if err := s.classRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}

	s.logger.Info("Class deleted",
		zap.String("class_id", id.String()),
		zap.String("name", class.Name))

	return nil
}
