package file

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
)

func newTestStore(t *testing.T) (*ReminderStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.txt")
	store := NewReminderStore(path, zap.NewNop()).(*ReminderStore)
	return store, path
}

func TestSaveAndFindAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	reminders := []domain.Reminder{
		{ID: "r1", Task: "buy milk", Time: "10:30 AM"},
		{ID: "r2", Task: "call mom", Time: "6:00 PM"},
	}
	for i := range reminders {
		if err := store.Save(ctx, &reminders[i]); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reminders, want 2", len(got))
	}
	if got[0].ID != "r1" || got[0].Task != "buy milk" || got[0].Time != "10:30 AM" {
		t.Errorf("first reminder = %+v", got[0])
	}
	if got[1].ID != "r2" || got[1].Task != "call mom" {
		t.Errorf("second reminder = %+v", got[1])
	}
}

func TestFindAll_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d reminders, want 0", len(got))
	}
}

func TestFindByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, &domain.Reminder{ID: "r1", Task: "buy milk", Time: "10:30 AM"})

	got, err := store.FindByID(ctx, "r1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Task != "buy milk" {
		t.Errorf("got task %q", got.Task)
	}

	if _, err := store.FindByID(ctx, "missing"); err != domain.ErrNotFound {
		t.Errorf("got err %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, &domain.Reminder{ID: "r1", Task: "buy milk", Time: "10:30 AM"})
	store.Save(ctx, &domain.Reminder{ID: "r2", Task: "call mom", Time: "6:00 PM"})

	if err := store.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("after delete got %+v", got)
	}
}

func TestSave_TaskWithSeparator(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// The time field never contains " - ", so the first cut belongs to it and
	// the task may carry the separator freely.
	store.Save(ctx, &domain.Reminder{ID: "r1", Task: "review PR - then merge", Time: "2:00 PM"})

	got, err := store.FindByID(ctx, "r1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Task != "review PR - then merge" {
		t.Errorf("got task %q", got.Task)
	}
	if got.Time != "2:00 PM" {
		t.Errorf("got time %q", got.Time)
	}
}
