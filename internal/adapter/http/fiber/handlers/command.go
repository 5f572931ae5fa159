package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/pipeline"
	"github.com/seu-repo/aria/internal/ports"
)

type CommandHandler struct {
	pipe        *pipeline.Pipeline
	transcriber ports.Transcriber
	log         *zap.Logger
}

func NewCommandHandler(pipe *pipeline.Pipeline, transcriber ports.Transcriber, log *zap.Logger) *CommandHandler {
	return &CommandHandler{
		pipe:        pipe,
		transcriber: transcriber,
		log:         log,
	}
}

type SendCommandRequest struct {
	Content    string `json:"content"`
	Type       string `json:"type"`
	IsResponse bool   `json:"is_response"`
	Audio      string `json:"audio"`     // Base64, voice only
	MimeType   string `json:"mime_type"` // voice only
}

type SendCommandResponse struct {
	Status        string   `json:"status"`
	Message       string   `json:"message"`
	RequiresInput bool     `json:"requires_input"`
	InputType     string   `json:"input_type,omitempty"`
	AllResponses  []string `json:"all_responses"`
	Success       bool     `json:"success"`
	ShouldStop    bool     `json:"should_stop"`
}

// SendCommand accepts a typed or voice command, pushes it through the
// pipeline and returns everything the assistant said.
func (h *CommandHandler) SendCommand(c *fiber.Ctx) error {
	var req SendCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	cmd := domain.Command{
		ID:         uuid.New().String(),
		Text:       req.Content,
		Kind:       domain.CommandKindText,
		IsResponse: req.IsResponse,
		ReceivedAt: time.Now(),
	}

	var spokenPrefix []string
	if req.Type == "voice" {
		text, prefix, err := h.transcribe(c, req)
		if err != nil || text == "" {
			// transcribe already wrote the error response
			return err
		}
		cmd.Text = text
		cmd.Kind = domain.CommandKindVoice
		spokenPrefix = prefix
	} else if cmd.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Command text is required"})
	}

	res, err := h.pipe.Submit(c.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrPipelineStopped) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant has shut down"})
		}
		if errors.Is(err, domain.ErrProcessingTimeout) {
			return c.JSON(SendCommandResponse{
				Status:       "error",
				Message:      res.Message(),
				AllResponses: res.Utterances,
				Success:      false,
			})
		}
		h.log.Error("Failed to process command", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process command"})
	}

	return c.JSON(h.toResponse(res, spokenPrefix))
}

// transcribe turns the voice payload into text, producing the echo line the
// assistant speaks before handling the command.
func (h *CommandHandler) transcribe(c *fiber.Ctx, req SendCommandRequest) (string, []string, error) {
	if h.transcriber == nil {
		return "", nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Voice input is not configured"})
	}
	if req.Audio == "" {
		return "", nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Audio payload is required for voice commands"})
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return "", nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid base64 audio"})
	}

	text, err := h.transcriber.Transcribe(c.Context(), audio, req.MimeType)
	if err != nil || text == "" {
		h.log.Warn("transcription failed", zap.Error(err))
		return "", nil, c.JSON(SendCommandResponse{
			Status:       "error",
			Message:      "I didn't catch that. Please speak again.",
			AllResponses: []string{"I didn't catch that. Please speak again."},
			Success:      false,
		})
	}
	return text, []string{fmt.Sprintf("You said: %s", text)}, nil
}

func (h *CommandHandler) toResponse(res domain.Result, prefix []string) SendCommandResponse {
	all := make([]string, 0, len(prefix)+len(res.Utterances))
	all = append(all, prefix...)
	all = append(all, res.Utterances...)
	status := "success"
	if !res.Success {
		status = "error"
	}

	resp := SendCommandResponse{
		Status:        status,
		Message:       res.Message(),
		RequiresInput: res.RequiresInput,
		AllResponses:  all,
		Success:       res.Success,
		ShouldStop:    res.ShouldStop,
	}
	if res.InputRequest != nil {
		resp.InputType = res.InputRequest.Slot
	}
	return resp
}

// Greet answers GET / with the time-of-day greeting. The greeting rides
// through the pipeline like any other command, so it is serialized with the
// worker, but it is flagged so a pending dialogue is left untouched.
func (h *CommandHandler) Greet(c *fiber.Ctx) error {
	cmd := domain.Command{
		ID:         uuid.New().String(),
		Kind:       domain.CommandKindText,
		Greeting:   true,
		ReceivedAt: time.Now(),
	}

	res, err := h.pipe.Submit(c.Context(), cmd)
	if err != nil {
		if errors.Is(err, domain.ErrPipelineStopped) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Assistant has shut down"})
		}
		h.log.Error("Failed to process greeting", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process command"})
	}
	return c.JSON(h.toResponse(res, nil))
}
