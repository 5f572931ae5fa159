package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/aria/internal/adapter/storage/file"
	"github.com/seu-repo/aria/internal/assistant"
	"github.com/seu-repo/aria/internal/mocks"
	"github.com/seu-repo/aria/internal/pipeline"
	"github.com/seu-repo/aria/internal/service/reminder"
)

// setupTestApp wires a full assistant stack: real engine, real pipeline,
// file-backed reminders, mocked external collaborators.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := zap.NewNop()

	reminderPath := filepath.Join(t.TempDir(), "reminders.txt")
	reminderRepo := file.NewReminderStore(reminderPath, log)

	co := assistant.Collaborators{
		Weather:   &mocks.MockWeatherService{},
		News:      &mocks.MockNewsService{},
		Market:    &mocks.MockMarketService{},
		IP:        &mocks.MockIPService{},
		Chat:      &mocks.MockChatService{},
		FreeChat:  &mocks.MockChatService{},
		Search:    &mocks.MockSearchService{},
		Email:     &mocks.MockEmailService{},
		Reminders: reminder.NewService(reminderRepo, nil, log),
		System:    &mocks.MockSystemService{},
		Launcher:  &mocks.MockAppLauncher{},
		Passwords: &mocks.MockPasswordGenerator{},
	}
	engine := assistant.NewEngine(co, "Aria", "sir", log)

	pipe := pipeline.New(engine, log)
	pipe.Start()
	t.Cleanup(pipe.Stop)

	handler := handlers.NewCommandHandler(pipe, nil, log)
	app := fiber.New()
	app.Post("/send_command", handler.SendCommand)
	app.Get("/", handler.Greet)
	return app
}

func sendCommand(t *testing.T, app *fiber.App, command string, isResponse bool) handlers.SendCommandResponse {
	t.Helper()
	payload, _ := json.Marshal(handlers.SendCommandRequest{
		Content:    command,
		Type:       "text",
		IsResponse: isResponse,
	})
	req := httptest.NewRequest(http.MethodPost, "/send_command", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var out handlers.SendCommandResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

// TestAPI_Greeting tests the GET / greeting endpoint
func TestAPI_Greeting(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var out handlers.SendCommandResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if out.Message == "" {
		t.Error("Expected a greeting message")
	}
}

// TestAPI_SimpleCommand tests a one-shot command round trip
func TestAPI_SimpleCommand(t *testing.T) {
	app := setupTestApp(t)

	out := sendCommand(t, app, "how are you", false)

	if !out.Success {
		t.Errorf("Expected success, got %+v", out)
	}
	if out.Message != "I am absolutely fine, sir. What about you?" {
		t.Errorf("Unexpected message: %q", out.Message)
	}
}

// TestAPI_ReminderDialogue tests a full multi-turn reminder conversation
// ending in a persisted reminder
func TestAPI_ReminderDialogue(t *testing.T) {
	app := setupTestApp(t)

	out := sendCommand(t, app, "remind me", false)
	if !out.RequiresInput || out.InputType != "reminder_task" {
		t.Fatalf("Expected the task question, got %+v", out)
	}

	out = sendCommand(t, app, "buy milk", true)
	if !out.RequiresInput || out.InputType != "reminder_time" {
		t.Fatalf("Expected the time question, got %+v", out)
	}

	out = sendCommand(t, app, "10:30 AM", true)
	if !out.Success || out.RequiresInput {
		t.Fatalf("Expected a completed reminder, got %+v", out)
	}
	if out.Message != "Reminder set for: 10:30 AM - buy milk" {
		t.Errorf("Unexpected message: %q", out.Message)
	}
}

// TestAPI_UnknownCommand tests the fallback response
func TestAPI_UnknownCommand(t *testing.T) {
	app := setupTestApp(t)

	out := sendCommand(t, app, "flibbertigibbet", false)

	if out.Success {
		t.Error("Expected failure for an unknown command")
	}
	if out.Message != "I'm not sure what you want me to do. Could you please rephrase that?" {
		t.Errorf("Unexpected message: %q", out.Message)
	}
}

// TestAPI_StopCommand tests the farewell and shutdown flag
func TestAPI_StopCommand(t *testing.T) {
	app := setupTestApp(t)

	out := sendCommand(t, app, "goodbye", false)

	if !out.ShouldStop {
		t.Error("Expected should_stop to be set")
	}
	if out.Message != "Goodbye! Have a great day!" {
		t.Errorf("Unexpected message: %q", out.Message)
	}

	// The pipeline refuses further commands after the farewell
	payload, _ := json.Marshal(handlers.SendCommandRequest{Content: "hello", Type: "text"})
	req := httptest.NewRequest(http.MethodPost, "/send_command", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 after shutdown, got %d", resp.StatusCode)
	}
}
