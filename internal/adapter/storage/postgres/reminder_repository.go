package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/observability/telemetry"
	"github.com/seu-repo/aria/internal/ports"
)

type ReminderRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReminderRepository(db *gorm.DB, log *zap.Logger) ports.ReminderRepository {
	return &ReminderRepository{
		db:  db,
		log: log,
	}
}

func (r *ReminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	start := time.Now()
	result := r.db.WithContext(ctx).Save(reminder)
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	if result.Error != nil {
		r.log.Error("Failed to save reminder", zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	var reminder domain.Reminder
	result := r.db.WithContext(ctx).First(&reminder, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, result.Error
	}
	return &reminder, nil
}

func (r *ReminderRepository) FindAll(ctx context.Context) ([]domain.Reminder, error) {
	var reminders []domain.Reminder
	start := time.Now()
	result := r.db.WithContext(ctx).Order("created_at asc").Find(&reminders)
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	if result.Error != nil {
		return nil, result.Error
	}
	return reminders, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Reminder{}, "id = ?", id)
	return result.Error
}
