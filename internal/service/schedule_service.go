package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mlefevre/cartable/internal/model"
	"go.uber.org/zap"
)

// ScheduleService manages the recurring slots of a class. Slot
// invariants (day of week 1..7, frequency enum, start week 0/1 for
// biweekly slots) are enforced here at mutation time; the generation
// engine reads slots as-is.
type ScheduleService struct {
	classRepo    ClassStore
	scheduleRepo ScheduleStore
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewScheduleService(classRepo ClassStore, scheduleRepo ScheduleStore, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		classRepo:    classRepo,
		scheduleRepo: scheduleRepo,
		validate:     validator.New(),
		logger:       logger,
	}
}

// CreateSlot validates the form and adds a slot to a class.
func (s *ScheduleService) CreateSlot(ctx context.Context, form *model.ScheduleSlotForm) (*model.ScheduleSlot, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("validate schedule slot: %w", err)
	}

	class, err := s.classRepo.GetByID(ctx, form.ClassID)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	slot := &model.ScheduleSlot{
		ClassID:         form.ClassID,
		DayOfWeek:       form.DayOfWeek,
		StartTime:       form.StartTime,
		DurationMinutes: form.DurationMinutes,
		Subject:         form.Subject,
		Frequency:       form.Frequency,
		StartWeek:       form.StartWeek,
	}
	if slot.Frequency == model.FrequencyWeekly {
		slot.StartWeek = nil
	}

	if err := s.scheduleRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create schedule slot: %w", err)
	}

	s.logger.Info("Schedule slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("class_id", slot.ClassID.String()),
		zap.Int("day_of_week", slot.DayOfWeek),
		zap.String("frequency", string(slot.Frequency)))

	return slot, nil
}

// UpdateSlot validates the form and rewrites an existing slot.
func (s *ScheduleService) UpdateSlot(ctx context.Context, slotID uuid.UUID, form *model.ScheduleSlotForm) (*model.ScheduleSlot, error) {
	if err := s.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("validate schedule slot: %w", err)
	}

	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get schedule slot: %w", err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.ClassID != form.ClassID {
		return nil, fmt.Errorf("schedule slot does not belong to class")
	}

	slot.DayOfWeek = form.DayOfWeek
	slot.StartTime = form.StartTime
	slot.DurationMinutes = form.DurationMinutes
	slot.Subject = form.Subject
	slot.Frequency = form.Frequency
	slot.StartWeek = form.StartWeek
	if slot.Frequency == model.FrequencyWeekly {
		slot.StartWeek = nil
	}

	if err := s.scheduleRepo.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("update schedule slot: %w", err)
	}

	s.logger.Info("Schedule slot updated", zap.String("slot_id", slot.ID.String()))

	return slot, nil
}

// GetClassSchedule returns the slots of a class ordered by weekday and
// start time.
func (s *ScheduleService) GetClassSchedule(ctx context.Context, classID uuid.UUID) ([]*model.ScheduleSlot, error) {
	return s.scheduleRepo.GetByClass(ctx, classID)
}

// DeleteSlot removes a slot from a class.
func (s *ScheduleService) DeleteSlot(ctx context.Context, classID, slotID uuid.UUID) error {
	slot, err := s.scheduleRepo.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get schedule slot: %w", err)
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.ClassID != classID {
		return fmt.Errorf("schedule slot does not belong to class")
	}

	if err := s.scheduleRepo.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete schedule slot: %w", err)
	}

	s.logger.Info("Schedule slot deleted",
		zap.String("slot_id", slotID.String()),
		zap.String("class_id", classID.String()))

	return nil
}
