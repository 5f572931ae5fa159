package ports

import (
	"context"

	"github.com/seu-repo/aria/internal/domain"
)

type ReminderRepository interface {
	Save(ctx context.Context, reminder *domain.Reminder) error
	FindByID(ctx context.Context, id string) (*domain.Reminder, error)
	FindAll(ctx context.Context) ([]domain.Reminder, error)
	Delete(ctx context.Context, id string) error
}
