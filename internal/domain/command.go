package domain

import "time"

// CommandKind distinguishes typed commands from transcribed voice input.
type CommandKind string

const (
	CommandKindText  CommandKind = "text"
	CommandKindVoice CommandKind = "voice"
)

// Command is a single user request entering the pipeline. IsResponse marks
// a follow-up answer to a pending question instead of a fresh command.
// Greeting marks the zero-slot greeting triggered by GET /; it is handled
// without touching any pending dialogue.
type Command struct {
	ID         string      `json:"id"`
	Text       string      `json:"text"`
	Kind       CommandKind `json:"kind"`
	IsResponse bool        `json:"is_response"`
	Greeting   bool        `json:"greeting,omitempty"`
	ReceivedAt time.Time   `json:"received_at"`
}

// SlotRequest describes the follow-up question the assistant needs answered
// before it can complete the current command.
type SlotRequest struct {
	Slot   string `json:"slot"`
	Prompt string `json:"prompt"`
}

// Result is everything produced by processing one command. Utterances holds
// every sentence spoken while handling it, in order.
type Result struct {
	CommandID     string       `json:"command_id"`
	Intent        Intent       `json:"intent"`
	Utterances    []string     `json:"utterances"`
	Success       bool         `json:"success"`
	ShouldStop    bool         `json:"should_stop"`
	RequiresInput bool         `json:"requires_input"`
	InputRequest  *SlotRequest `json:"input_request,omitempty"`
	Err           error        `json:"-"`
}

// Message returns the last utterance, which is what the HTTP surface reports
// as the primary message.
func (r Result) Message() string {
	if len(r.Utterances) == 0 {
		return ""
	}
	return r.Utterances[len(r.Utterances)-1]
}

// Reminder is a task scheduled by the user for a spoken time description.
type Reminder struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Task      string    `json:"task"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsArticle is a single headline returned by the news collaborator.
type NewsArticle struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

// WeatherReport is the subset of a weather lookup the assistant speaks.
type WeatherReport struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	TempCelsius float64 `json:"temp_celsius"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// ExchangeQuote is a currency conversion rate plus the upstream refresh time.
// LastUpdated is zero when the rate came from the local cache.
type ExchangeQuote struct {
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"last_updated"`
}

// BatteryStatus is the local power state read from the host.
type BatteryStatus struct {
	Percent  int  `json:"percent"`
	Charging bool `json:"charging"`
	Present  bool `json:"present"`
}
