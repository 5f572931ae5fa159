package assistant

import "github.com/seu-repo/aria/internal/domain"

// Slot keys for multi-turn dialogues.
const (
	SlotWeatherCity    = "weather_city"
	SlotYouTubeQuery   = "youtube_query"
	SlotGoogleQuery    = "google_query"
	SlotWikiQuery      = "wiki_query"
	SlotGPTQuery       = "gpt_query"
	SlotFreeGPTQuery   = "free_gpt_query"
	SlotStockSymbol    = "stock_symbol"
	SlotCryptoSymbol   = "crypto_symbol"
	SlotPasswordLength = "password_length"
	SlotEmailRecipient = "email_recipient"
	SlotEmailSubject   = "email_subject"
	SlotEmailMessage   = "email_message"
	SlotReminderTask   = "reminder_task"
	SlotReminderTime   = "reminder_time"
	SlotExchangeBase   = "exchange_base"
	SlotExchangeTarget = "exchange_target"
)

// Dialogue tracks the single in-flight multi-turn exchange. At most one slot
// is pending at a time; answers to earlier slots accumulate in filled until
// the dialogue completes or resets. Only the pipeline worker touches it, so
// no locking is needed.
type Dialogue struct {
	intent  domain.Intent
	pending string
	prompt  string
	filled  map[string]string
}

func NewDialogue() *Dialogue {
	return &Dialogue{filled: make(map[string]string)}
}

// Begin starts a dialogue for the given intent, discarding any previous one.
func (d *Dialogue) Begin(intent domain.Intent) {
	d.intent = intent
	d.pending = ""
	d.prompt = ""
	d.filled = make(map[string]string)
}

// Await marks a slot as the question the user must answer next.
func (d *Dialogue) Await(slot, prompt string) {
	d.pending = slot
	d.prompt = prompt
}

// Fill stores the answer for the pending slot and clears it.
func (d *Dialogue) Fill(answer string) (slot string) {
	slot = d.pending
	d.filled[slot] = answer
	d.pending = ""
	d.prompt = ""
	return slot
}

// Pending returns the slot currently awaiting an answer, or empty.
func (d *Dialogue) Pending() string { return d.pending }

// Prompt returns the question asked for the pending slot.
func (d *Dialogue) Prompt() string { return d.prompt }

// Intent returns the intent this dialogue is collecting slots for.
func (d *Dialogue) Intent() domain.Intent { return d.intent }

// Value returns a previously filled slot.
func (d *Dialogue) Value(slot string) string { return d.filled[slot] }

// Reset returns the dialogue to idle.
func (d *Dialogue) Reset() {
	d.intent = domain.IntentUnknown
	d.pending = ""
	d.prompt = ""
	d.filled = make(map[string]string)
}
