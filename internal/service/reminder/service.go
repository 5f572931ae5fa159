package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/adapter/queue"
	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/ports"
)

const createdSubject = "aria.reminders.created"

// Service stores reminders and publishes a created event so downstream
// consumers (notifiers, schedulers) can pick them up.
type Service struct {
	repo ports.ReminderRepository
	mq   queue.MessageQueue
	log  *zap.Logger
}

func NewService(repo ports.ReminderRepository, mq queue.MessageQueue, log *zap.Logger) ports.ReminderService {
	return &Service{
		repo: repo,
		mq:   mq,
		log:  log,
	}
}

func (s *Service) Add(ctx context.Context, task, timeSpec string) (*domain.Reminder, error) {
	if task == "" {
		return nil, fmt.Errorf("reminder: task is required")
	}
	reminder := &domain.Reminder{
		ID:        uuid.New().String(),
		Task:      task,
		Time:      timeSpec,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, reminder); err != nil {
		return nil, err
	}

	if s.mq != nil {
		if data, err := json.Marshal(reminder); err == nil {
			if err := s.mq.Publish(createdSubject, data); err != nil {
				s.log.Warn("failed to publish reminder event", zap.Error(err))
			}
		}
	}

	s.log.Info("reminder saved",
		zap.String("id", reminder.ID),
		zap.String("time", reminder.Time))
	return reminder, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.repo.FindAll(ctx)
}
