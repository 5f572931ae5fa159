package assistant

import (
	"testing"

	"github.com/seu-repo/aria/internal/domain"
)

func TestResolve_ExactMatch(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		query string
		want  domain.Intent
	}{
		{"hello", domain.IntentGreeting},
		{"how are you", domain.IntentHowAreYou},
		{"open camera", domain.IntentOpenCamera},
		{"weather", domain.IntentWeather},
		{"what time is it", domain.IntentCurrentTime},
		{"time", domain.IntentCurrentTime},
		{"date", domain.IntentDateTime},
		{"send email", domain.IntentEmail},
		{"generate password", domain.IntentGeneratePassword},
		{"exchange rate", domain.IntentExchangeRate},
		{"battery status", domain.IntentBatteryStatus},
		{"ask gpt", domain.IntentAskGPT},
		{"ask to ai", domain.IntentAskAI},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.query); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestResolve_Normalization(t *testing.T) {
	r := NewResolver()

	// Case and whitespace must not affect matching
	if got := r.Resolve("  WHAT   Time IS it  "); got != domain.IntentCurrentTime {
		t.Errorf("Resolve with messy whitespace = %v, want IntentCurrentTime", got)
	}
	if got := r.Resolve("HELLO"); got != domain.IntentGreeting {
		t.Errorf("Resolve(HELLO) = %v, want IntentGreeting", got)
	}
}

func TestResolve_Containment(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		query string
		want  domain.Intent
	}{
		{"please open camera now", domain.IntentOpenCamera},
		{"could you tell me the weather forecast for tomorrow", domain.IntentWeather},
		{"i want to send email to my boss", domain.IntentEmail},
		{"can you set reminder for me", domain.IntentReminder},
		{"what is my ip please", domain.IntentIPAddress},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.query); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestResolve_FuzzyMatch(t *testing.T) {
	r := NewResolver()

	// All words of "stock price" appear, just reordered
	if got := r.Resolve("price stock"); got != domain.IntentStockPrice {
		t.Errorf("Resolve(price stock) = %v, want IntentStockPrice", got)
	}
	if got := r.Resolve("news latest"); got != domain.IntentNews {
		t.Errorf("Resolve(news latest) = %v, want IntentNews", got)
	}
}

func TestResolve_FuzzyThresholdIsStrict(t *testing.T) {
	r := NewResolver()

	// "price alert" shares exactly one of two words with "share price" and
	// "stock price", a similarity of exactly 0.5, which must not match.
	if got := r.Resolve("price alert"); got != domain.IntentUnknown {
		t.Errorf("Resolve(price alert) = %v, want IntentUnknown", got)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := NewResolver()

	for _, query := range []string{"flibbertigibbet", "purple monkey dishwasher", ""} {
		if got := r.Resolve(query); got != domain.IntentUnknown {
			t.Errorf("Resolve(%q) = %v, want IntentUnknown", query, got)
		}
	}
}

func TestIsStopPhrase(t *testing.T) {
	r := NewResolver()

	stops := []string{"stop", "exit", "quit", "goodbye", "shut down", "please stop now", "okay bye"}
	for _, q := range stops {
		if !r.IsStopPhrase(q) {
			t.Errorf("IsStopPhrase(%q) = false, want true", q)
		}
	}

	notStops := []string{"weather", "hello", "what time is it"}
	for _, q := range notStops {
		if r.IsStopPhrase(q) {
			t.Errorf("IsStopPhrase(%q) = true, want false", q)
		}
	}
}

func TestResolve_RegistrationOrderBreaksTies(t *testing.T) {
	r := NewResolver()

	// "gpt" is a variant of ask_gpt; the ask_to_ai table never steals it.
	if got := r.Resolve("gpt"); got != domain.IntentAskGPT {
		t.Errorf("Resolve(gpt) = %v, want IntentAskGPT", got)
	}
}

func TestResolve_EveryIntentReachable(t *testing.T) {
	r := NewResolver()

	// Every registered variant's first phrase resolves to its own intent.
	for _, p := range r.patterns {
		if got := r.Resolve(p.variants[0]); got != p.intent {
			t.Errorf("Resolve(%q) = %v, want %v", p.variants[0], got, p.intent)
		}
	}

	// Every declared intent except Unknown has at least one phrase.
	registered := make(map[domain.Intent]bool)
	for _, p := range r.patterns {
		registered[p.intent] = true
	}
	for i := domain.IntentStop; i <= domain.IntentAskAI; i++ {
		if !registered[i] {
			t.Errorf("intent %v has no registered phrases", i)
		}
	}
}
