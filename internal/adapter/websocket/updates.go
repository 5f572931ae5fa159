package websocket

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
)

// UtteranceEvent is pushed to every connected client whenever the assistant
// finishes a command, so web UIs can show the conversation live.
type UtteranceEvent struct {
	CommandID  string    `json:"command_id"`
	Intent     string    `json:"intent"`
	Utterances []string  `json:"utterances"`
	Success    bool      `json:"success"`
	ShouldStop bool      `json:"should_stop"`
	Timestamp  time.Time `json:"timestamp"`
}

// BroadcastResult pushes a processed command result to all clients.
func (h *Hub) BroadcastResult(res domain.Result, log *zap.Logger) {
	event := UtteranceEvent{
		CommandID:  res.CommandID,
		Intent:     res.Intent.String(),
		Utterances: res.Utterances,
		Success:    res.Success,
		ShouldStop: res.ShouldStop,
		Timestamp:  time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal utterance event", zap.Error(err))
		return
	}
	h.broadcast <- data
}
