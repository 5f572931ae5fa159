package assistant

import (
	"strings"

	"github.com/seu-repo/aria/internal/domain"
)

// fuzzyThreshold is the minimum word-overlap similarity for a fuzzy match.
// A score must be strictly above it, so a query sharing exactly half its
// words with a variant does not match.
const fuzzyThreshold = 0.5

type intentPattern struct {
	intent   domain.Intent
	variants []string
}

// Resolver maps free-form text onto the closed intent set. Matching runs in
// three passes over every registered pattern: exact phrase, substring
// containment, then fuzzy word overlap. Earlier passes always win, and ties
// inside a pass fall to registration order, with stop phrases registered
// first.
type Resolver struct {
	patterns []intentPattern
}

func NewResolver() *Resolver {
	r := &Resolver{}
	r.register(domain.IntentStop,
		"stop", "exit", "quit", "bye", "goodbye", "shut down",
		"shutdown", "turn off", "stop listening", "stop assistant")
	r.register(domain.IntentHowAreYou,
		"how are you", "how're you", "how you doing", "how do you do",
		"what's up", "how are things", "how is it going")
	r.register(domain.IntentOpenCommandPrompt,
		"open cmd", "launch command prompt", "start cmd", "command prompt",
		"cmd", "terminal", "open terminal")
	r.register(domain.IntentOpenCamera,
		"open camera", "launch camera", "start camera", "camera",
		"turn on camera", "show camera")
	r.register(domain.IntentOpenNotepad,
		"open notepad", "launch notepad", "start notepad", "notepad",
		"text editor", "open text editor")
	r.register(domain.IntentOpenDiscord,
		"open discord", "launch discord", "start discord", "discord")
	r.register(domain.IntentOpenVSCode,
		"open vs code", "launch vs code", "start vs code", "visual studio code",
		"vs code", "vscode", "code editor")
	r.register(domain.IntentIPAddress,
		"ip address", "what's my ip", "what is my ip", "show ip", "get ip",
		"network address", "my ip")
	r.register(domain.IntentYouTube,
		"youtube", "play youtube", "search youtube", "find on youtube",
		"video", "play video")
	r.register(domain.IntentGoogleSearch,
		"open google", "search google", "google search", "find on google",
		"google", "search the web", "web search")
	r.register(domain.IntentWikipedia,
		"wikipedia", "wiki search", "search wiki", "find on wikipedia",
		"wiki", "search wikipedia", "look up on wikipedia")
	r.register(domain.IntentNews,
		"give me news", "show news", "latest news", "what's new",
		"current news", "news update", "tell me the news")
	r.register(domain.IntentWeather,
		"weather", "what's the weather", "weather forecast", "temperature",
		"how's the weather", "is it going to rain", "weather report")
	r.register(domain.IntentEmail,
		"send email", "compose email", "write email", "new email",
		"email", "send mail", "write mail")
	r.register(domain.IntentReminder,
		"set reminder", "create reminder", "remind me", "new reminder",
		"set alarm", "reminder")
	r.register(domain.IntentStockPrice,
		"stock price", "check stocks", "stock market", "stock value",
		"stocks", "share price", "stock quote")
	r.register(domain.IntentExchangeRate,
		"exchange rate", "currency exchange", "convert currency",
		"exchange currency", "currency conversion", "forex")
	r.register(domain.IntentGeneratePassword,
		"generate password", "create password", "new password",
		"random password", "password", "secure password")
	r.register(domain.IntentCryptoPrice,
		"crypto price", "check crypto", "cryptocurrency price",
		"crypto value", "bitcoin price", "ethereum price")
	r.register(domain.IntentBatteryStatus,
		"battery status", "check battery", "battery level",
		"power status", "battery", "power level")
	r.register(domain.IntentCurrentTime,
		"current time", "what's the time", "tell me the time",
		"time please", "what time is it", "time")
	r.register(domain.IntentDateTime,
		"date and time", "what's the date", "tell me the date",
		"date please", "what day is it", "date")
	r.register(domain.IntentAskGPT,
		"ask gpt", "chat gpt", "ask chat gpt", "question for gpt",
		"gpt", "ai chat")
	r.register(domain.IntentAskAI,
		"ask to ai", "free gpt", "ask ai", "question for ai",
		"ai", "artificial intelligence")
	r.register(domain.IntentGreeting,
		"hello", "hi", "hey", "greetings", "good morning",
		"good afternoon", "good evening", "good night")
	return r
}

func (r *Resolver) register(intent domain.Intent, variants ...string) {
	r.patterns = append(r.patterns, intentPattern{intent: intent, variants: variants})
}

// Normalize lowercases, trims and collapses internal whitespace.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Resolve returns the intent for the given text, or IntentUnknown.
func (r *Resolver) Resolve(text string) domain.Intent {
	query := Normalize(text)
	if query == "" {
		return domain.IntentUnknown
	}

	// Pass 1: exact phrase match.
	for _, p := range r.patterns {
		for _, v := range p.variants {
			if query == v {
				return p.intent
			}
		}
	}

	// Pass 2: variant contained in the query.
	for _, p := range r.patterns {
		for _, v := range p.variants {
			if strings.Contains(query, v) {
				return p.intent
			}
		}
	}

	// Pass 3: fuzzy word overlap. Strict greater-than keeps ties on the
	// earliest registered intent.
	queryWords := wordSet(query)
	best := domain.IntentUnknown
	bestScore := 0.0
	for _, p := range r.patterns {
		for _, v := range p.variants {
			score := similarity(wordSet(v), queryWords)
			if score > fuzzyThreshold && score > bestScore {
				bestScore = score
				best = p.intent
			}
		}
	}
	return best
}

// IsStopPhrase reports whether the text contains any stop phrase. The check
// runs before resolution so a farewell embedded in a longer sentence still
// shuts the assistant down.
func (r *Resolver) IsStopPhrase(text string) bool {
	query := Normalize(text)
	for _, v := range r.patterns[0].variants {
		if strings.Contains(query, v) {
			return true
		}
	}
	return false
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

func similarity(variant, query map[string]struct{}) float64 {
	if len(variant) == 0 || len(query) == 0 {
		return 0
	}
	common := 0
	for w := range variant {
		if _, ok := query[w]; ok {
			common++
		}
	}
	denom := len(variant)
	if len(query) > denom {
		denom = len(query)
	}
	return float64(common) / float64(denom)
}
