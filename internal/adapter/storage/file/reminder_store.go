package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/ports"
)

// ReminderStore keeps reminders in a plain text file, one per line as
// "id|time - task". Used when no database is configured.
type ReminderStore struct {
	path string
	mu   sync.Mutex
	log  *zap.Logger
}

func NewReminderStore(path string, log *zap.Logger) ports.ReminderRepository {
	if path == "" {
		path = "reminders.txt"
	}
	return &ReminderStore{path: path, log: log}
}

func (s *ReminderStore) Save(ctx context.Context, reminder *domain.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("reminder store: open %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s|%s - %s\n", reminder.ID, reminder.Time, reminder.Task); err != nil {
		return fmt.Errorf("reminder store: write: %w", err)
	}
	return nil
}

func (s *ReminderStore) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	reminders, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reminders {
		if reminders[i].ID == id {
			return &reminders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *ReminderStore) FindAll(ctx context.Context) ([]domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reminder store: open %s: %w", s.path, err)
	}
	defer f.Close()

	var reminders []domain.Reminder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		reminder, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		reminders = append(reminders, reminder)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reminder store: read: %w", err)
	}
	return reminders, nil
}

func (s *ReminderStore) Delete(ctx context.Context, id string) error {
	reminders, err := s.FindAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, r := range reminders {
		if r.ID == id {
			continue
		}
		fmt.Fprintf(&b, "%s|%s - %s\n", r.ID, r.Time, r.Task)
	}
	return os.WriteFile(s.path, []byte(b.String()), 0o644)
}

func parseLine(line string) (domain.Reminder, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.Reminder{}, false
	}
	id, rest, found := strings.Cut(line, "|")
	if !found {
		return domain.Reminder{}, false
	}
	timeSpec, task, found := strings.Cut(rest, " - ")
	if !found {
		return domain.Reminder{}, false
	}
	return domain.Reminder{
		ID:        id,
		Task:      task,
		Time:      timeSpec,
		CreatedAt: time.Time{},
	}, true
}
