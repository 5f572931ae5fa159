package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/observability/telemetry"
	"github.com/seu-repo/aria/internal/ports"
)

const (
	farewellMessage = "Goodbye! Have a great day!"
	unknownMessage  = "I'm not sure what you want me to do. Could you please rephrase that?"
	emptyMessage    = "I couldn't hear you clearly. Please try again."
	defaultPwLen    = 12
)

// Collaborators bundles every external service the engine speaks to.
type Collaborators struct {
	Weather   ports.WeatherService
	News      ports.NewsService
	Market    ports.MarketService
	IP        ports.IPService
	Chat      ports.ChatService
	FreeChat  ports.ChatService
	Search    ports.SearchService
	Email     ports.EmailService
	Reminders ports.ReminderService
	System    ports.SystemService
	Launcher  ports.AppLauncher
	Passwords ports.PasswordGenerator
}

// Engine resolves commands to intents and runs their handlers. It owns the
// dialogue state, so it must only be driven from a single goroutine; the
// pipeline guarantees that.
type Engine struct {
	resolver *Resolver
	dialogue *Dialogue
	co       Collaborators
	botName  string
	userName string
	log      *zap.Logger
}

func NewEngine(co Collaborators, botName, userName string, log *zap.Logger) *Engine {
	return &Engine{
		resolver: NewResolver(),
		dialogue: NewDialogue(),
		co:       co,
		botName:  botName,
		userName: userName,
		log:      log,
	}
}

// Handle processes one command to completion and returns everything spoken.
func (e *Engine) Handle(ctx context.Context, cmd domain.Command) domain.Result {
	start := time.Now()
	sink := NewCaptureSink()
	res := e.handle(ctx, cmd, sink)
	res.CommandID = cmd.ID
	res.Utterances = sink.Utterances()

	status := "ok"
	if !res.Success {
		status = "error"
	}
	telemetry.CommandsTotal.WithLabelValues(res.Intent.String(), status).Inc()
	telemetry.CommandLatency.Observe(time.Since(start).Seconds())
	if res.RequiresInput {
		telemetry.PendingDialogues.Set(1)
	} else {
		telemetry.PendingDialogues.Set(0)
	}
	return res
}

func (e *Engine) handle(ctx context.Context, cmd domain.Command, sink OutputSink) domain.Result {
	// The greeting carries no text and must leave a pending dialogue alone.
	if cmd.Greeting {
		return e.handleGreeting(sink)
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		sink.Speak(emptyMessage)
		e.dialogue.Reset()
		return domain.Result{Intent: domain.IntentUnknown, Success: false, Err: domain.ErrEmptyCommand}
	}

	// Stop phrases win over everything, including pending questions.
	if e.resolver.IsStopPhrase(text) {
		e.dialogue.Reset()
		sink.Speak(farewellMessage)
		return domain.Result{Intent: domain.IntentStop, Success: true, ShouldStop: true}
	}

	// A flagged follow-up answers the pending question. Anything else
	// abandons the dialogue and resolves fresh.
	if cmd.IsResponse && e.dialogue.Pending() != "" {
		return e.resumeDialogue(ctx, text, sink)
	}
	e.dialogue.Reset()

	intent := e.resolver.Resolve(text)
	e.log.Info("command resolved",
		zap.String("intent", intent.String()),
		zap.String("kind", string(cmd.Kind)))
	return e.dispatch(ctx, intent, sink)
}

func (e *Engine) dispatch(ctx context.Context, intent domain.Intent, sink OutputSink) domain.Result {
	switch intent {
	case domain.IntentGreeting:
		return e.handleGreeting(sink)
	case domain.IntentHowAreYou:
		sink.Speak("I am absolutely fine, sir. What about you?")
		return ok(intent)
	case domain.IntentOpenCommandPrompt:
		return e.handleOpenApp(ctx, intent, "terminal", "Opening terminal", sink)
	case domain.IntentOpenCamera:
		return e.handleOpenApp(ctx, intent, "camera", "Opening camera", sink)
	case domain.IntentOpenNotepad:
		return e.handleOpenApp(ctx, intent, "notepad", "Opening notepad", sink)
	case domain.IntentOpenDiscord:
		return e.handleOpenApp(ctx, intent, "discord", "Opening Discord", sink)
	case domain.IntentOpenVSCode:
		return e.handleOpenApp(ctx, intent, "vscode", "Opening Visual Studio Code", sink)
	case domain.IntentIPAddress:
		return e.handleIPAddress(ctx, sink)
	case domain.IntentYouTube:
		return e.ask(intent, SlotYouTubeQuery, "What do you want to play on YouTube?", sink)
	case domain.IntentGoogleSearch:
		return e.ask(intent, SlotGoogleQuery, "What do you want to search on Google?", sink)
	case domain.IntentWikipedia:
		return e.ask(intent, SlotWikiQuery, "What do you want to search on Wikipedia?", sink)
	case domain.IntentNews:
		return e.handleNews(ctx, sink)
	case domain.IntentWeather:
		return e.ask(intent, SlotWeatherCity, "What city would you like to know the weather for?", sink)
	case domain.IntentEmail:
		return e.ask(intent, SlotEmailRecipient, "Please enter the recipient's email:", sink)
	case domain.IntentReminder:
		return e.ask(intent, SlotReminderTask, "What task should I remind you about?", sink)
	case domain.IntentStockPrice:
		return e.ask(intent, SlotStockSymbol, "Which stock price would you like to check? (Enter symbol)", sink)
	case domain.IntentExchangeRate:
		return e.ask(intent, SlotExchangeBase, "Enter base currency (e.g., USD):", sink)
	case domain.IntentGeneratePassword:
		return e.ask(intent, SlotPasswordLength, "What length should the password be? (default is 12)", sink)
	case domain.IntentCryptoPrice:
		return e.ask(intent, SlotCryptoSymbol, "Which cryptocurrency price would you like to check? (e.g., btc, eth)", sink)
	case domain.IntentBatteryStatus:
		return e.handleBattery(ctx, sink)
	case domain.IntentCurrentTime:
		return e.handleCurrentTime(sink)
	case domain.IntentDateTime:
		return e.handleDateTime(sink)
	case domain.IntentAskGPT:
		return e.ask(intent, SlotGPTQuery, "What would you like to ask GPT?", sink)
	case domain.IntentAskAI:
		return e.ask(intent, SlotFreeGPTQuery, "What would you like to ask?", sink)
	default:
		sink.Speak(unknownMessage)
		return domain.Result{Intent: domain.IntentUnknown, Success: false, Err: domain.ErrUnknownIntent}
	}
}

// ask parks the dialogue on a slot and reports the follow-up question.
func (e *Engine) ask(intent domain.Intent, slot, prompt string, sink OutputSink) domain.Result {
	e.dialogue.Begin(intent)
	e.dialogue.Await(slot, prompt)
	sink.Speak(prompt)
	return domain.Result{
		Intent:        intent,
		Success:       true,
		RequiresInput: true,
		InputRequest:  &domain.SlotRequest{Slot: slot, Prompt: prompt},
	}
}

// askNext queues the next question of a multi-slot dialogue.
func (e *Engine) askNext(slot, prompt string, sink OutputSink) domain.Result {
	e.dialogue.Await(slot, prompt)
	sink.Speak(prompt)
	return domain.Result{
		Intent:        e.dialogue.Intent(),
		Success:       true,
		RequiresInput: true,
		InputRequest:  &domain.SlotRequest{Slot: slot, Prompt: prompt},
	}
}

func (e *Engine) resumeDialogue(ctx context.Context, answer string, sink OutputSink) domain.Result {
	slot := e.dialogue.Fill(answer)
	intent := e.dialogue.Intent()

	switch slot {
	case SlotWeatherCity:
		return e.finishWeather(ctx, answer, sink)
	case SlotYouTubeQuery:
		return e.finishYouTube(ctx, answer, sink)
	case SlotGoogleQuery:
		return e.finishGoogle(ctx, answer, sink)
	case SlotWikiQuery:
		return e.finishWikipedia(ctx, answer, sink)
	case SlotGPTQuery:
		return e.finishChat(ctx, e.co.Chat, intent, answer, sink)
	case SlotFreeGPTQuery:
		return e.finishChat(ctx, e.co.FreeChat, intent, answer, sink)
	case SlotStockSymbol:
		return e.finishStock(ctx, answer, sink)
	case SlotCryptoSymbol:
		return e.finishCrypto(ctx, answer, sink)
	case SlotPasswordLength:
		return e.finishPassword(answer, sink)
	case SlotEmailRecipient:
		return e.askNext(SlotEmailSubject, "What should be the subject of the email?", sink)
	case SlotEmailSubject:
		return e.askNext(SlotEmailMessage, "What message would you like to send?", sink)
	case SlotEmailMessage:
		return e.finishEmail(ctx, sink)
	case SlotReminderTask:
		return e.askNext(SlotReminderTime, "At what time? (e.g., 10:30 AM)", sink)
	case SlotReminderTime:
		return e.finishReminder(ctx, sink)
	case SlotExchangeBase:
		return e.askNext(SlotExchangeTarget, "Enter target currency (e.g., EUR):", sink)
	case SlotExchangeTarget:
		return e.finishExchange(ctx, sink)
	default:
		e.dialogue.Reset()
		sink.Speak(unknownMessage)
		return domain.Result{Intent: domain.IntentUnknown, Success: false, Err: domain.ErrUnknownIntent}
	}
}

func (e *Engine) handleGreeting(sink OutputSink) domain.Result {
	hour := time.Now().Hour()
	greeting := "Good "
	switch {
	case hour >= 6 && hour < 12:
		greeting += "Morning"
	case hour >= 12 && hour < 16:
		greeting += "Afternoon"
	case hour >= 16 && hour < 19:
		greeting += "Evening"
	default:
		greeting += "Night"
	}
	sink.Speak(fmt.Sprintf("%s %s. I am %s. How may I assist you?", greeting, e.userName, e.botName))
	return ok(domain.IntentGreeting)
}

func (e *Engine) handleOpenApp(ctx context.Context, intent domain.Intent, app, spoken string, sink OutputSink) domain.Result {
	if err := e.co.Launcher.OpenApp(ctx, app); err != nil {
		return e.fail(intent, "Error opening application", err, sink)
	}
	sink.Speak(spoken)
	return ok(intent)
}

func (e *Engine) handleIPAddress(ctx context.Context, sink OutputSink) domain.Result {
	ip, err := e.co.IP.PublicIP(ctx)
	if err != nil {
		return e.fail(domain.IntentIPAddress, "Sorry, I couldn't find your IP address right now.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Your IP address is %s", ip))
	return ok(domain.IntentIPAddress)
}

func (e *Engine) handleNews(ctx context.Context, sink OutputSink) domain.Result {
	sink.Speak("Fetching the latest news headlines...")
	articles, err := e.co.News.TopHeadlines(ctx, 5)
	if err != nil {
		return e.fail(domain.IntentNews, "Sorry, I couldn't fetch the news right now.", err, sink)
	}
	for _, a := range articles {
		sink.Speak(a.Title)
	}
	return ok(domain.IntentNews)
}

func (e *Engine) handleBattery(ctx context.Context, sink OutputSink) domain.Result {
	status, err := e.co.System.Battery(ctx)
	if err != nil || !status.Present {
		sink.Speak("Could not get battery information")
		return domain.Result{Intent: domain.IntentBatteryStatus, Success: err == nil}
	}
	plugged := "not plugged in"
	if status.Charging {
		plugged = "plugged in"
	}
	sink.Speak(fmt.Sprintf("Battery is at %d%% and is %s", status.Percent, plugged))
	return ok(domain.IntentBatteryStatus)
}

func (e *Engine) handleCurrentTime(sink OutputSink) domain.Result {
	timeStr, _ := e.co.System.Now()
	sink.Speak(fmt.Sprintf("It's %s", timeStr))
	return ok(domain.IntentCurrentTime)
}

func (e *Engine) handleDateTime(sink OutputSink) domain.Result {
	timeStr, dateStr := e.co.System.Now()
	sink.Speak(fmt.Sprintf("It's %s on %s", timeStr, dateStr))
	return ok(domain.IntentDateTime)
}

func (e *Engine) finishWeather(ctx context.Context, city string, sink OutputSink) domain.Result {
	sink.Speak(fmt.Sprintf("Fetching weather details for %s...", city))
	report, err := e.co.Weather.CurrentWeather(ctx, city)
	if err != nil {
		return e.fail(domain.IntentWeather,
			fmt.Sprintf("Sorry, I had trouble getting weather information for %s. Please try again.", city), err, sink)
	}
	sink.Speak(fmt.Sprintf(
		"Current weather in %s: %s. Temperature is %.1f degrees Celsius (feels like %.1f degrees Celsius). Humidity is %d%% with wind speed of %.1f meters per second.",
		report.City, report.Description, report.TempCelsius, report.FeelsLike, report.Humidity, report.WindSpeed))
	return ok(domain.IntentWeather)
}

func (e *Engine) finishYouTube(ctx context.Context, query string, sink OutputSink) domain.Result {
	url := e.co.Search.YouTubeURL(query)
	if err := e.co.Launcher.OpenURL(ctx, url); err != nil {
		return e.fail(domain.IntentYouTube, "Sorry, I couldn't open YouTube right now.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Playing %s on YouTube", query))
	return ok(domain.IntentYouTube)
}

func (e *Engine) finishGoogle(ctx context.Context, query string, sink OutputSink) domain.Result {
	url := e.co.Search.GoogleURL(query)
	if err := e.co.Launcher.OpenURL(ctx, url); err != nil {
		return e.fail(domain.IntentGoogleSearch, "Sorry, I couldn't open Google right now.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Searching for %s on Google", query))
	return ok(domain.IntentGoogleSearch)
}

func (e *Engine) finishWikipedia(ctx context.Context, topic string, sink OutputSink) domain.Result {
	summary, err := e.co.Search.WikipediaSummary(ctx, topic)
	if err != nil {
		return e.fail(domain.IntentWikipedia,
			fmt.Sprintf("Sorry, I couldn't find any Wikipedia article about %s", topic), err, sink)
	}
	sink.Speak("Here's what I found on Wikipedia:")
	sink.Speak(summary)
	return ok(domain.IntentWikipedia)
}

func (e *Engine) finishChat(ctx context.Context, svc ports.ChatService, intent domain.Intent, question string, sink OutputSink) domain.Result {
	reply, err := svc.Ask(ctx, question)
	if err != nil {
		return e.fail(intent, "I apologize, but I'm having trouble processing your question. Please try rephrasing it or ask something else.", err, sink)
	}
	sink.Speak(reply)
	return ok(intent)
}

func (e *Engine) finishStock(ctx context.Context, symbol string, sink OutputSink) domain.Result {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	price, err := e.co.Market.StockPrice(ctx, symbol)
	if err != nil {
		return e.fail(domain.IntentStockPrice,
			fmt.Sprintf("Could not find stock information for %s", symbol), err, sink)
	}
	sink.Speak(fmt.Sprintf("The current price of %s is $%.2f", symbol, price))
	return ok(domain.IntentStockPrice)
}

func (e *Engine) finishCrypto(ctx context.Context, symbol string, sink OutputSink) domain.Result {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	price, err := e.co.Market.CryptoPrice(ctx, symbol)
	if err != nil {
		return e.fail(domain.IntentCryptoPrice,
			fmt.Sprintf("Could not find price for %s", symbol), err, sink)
	}
	sink.Speak(fmt.Sprintf("The current price of %s is $%.2f", symbol, price))
	return ok(domain.IntentCryptoPrice)
}

func (e *Engine) finishPassword(lengthStr string, sink OutputSink) domain.Result {
	length, err := strconv.Atoi(strings.TrimSpace(lengthStr))
	if err != nil || length <= 0 {
		sink.Speak("Using default length of 12 characters.")
		length = defaultPwLen
	}
	password, err := e.co.Passwords.Generate(length)
	if err != nil {
		return e.fail(domain.IntentGeneratePassword, "Sorry, I couldn't generate a password right now.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Generated password: %s", password))
	return ok(domain.IntentGeneratePassword)
}

func (e *Engine) finishEmail(ctx context.Context, sink OutputSink) domain.Result {
	recipient := e.dialogue.Value(SlotEmailRecipient)
	subject := e.dialogue.Value(SlotEmailSubject)
	message := e.dialogue.Value(SlotEmailMessage)
	if err := e.co.Email.Send(ctx, recipient, subject, message); err != nil {
		return e.fail(domain.IntentEmail, "Sorry, I couldn't send the email. Please try again later.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Email sent successfully to %s", recipient))
	return ok(domain.IntentEmail)
}

func (e *Engine) finishReminder(ctx context.Context, sink OutputSink) domain.Result {
	task := e.dialogue.Value(SlotReminderTask)
	timeSpec := e.dialogue.Value(SlotReminderTime)
	if _, err := e.co.Reminders.Add(ctx, task, timeSpec); err != nil {
		return e.fail(domain.IntentReminder, "Sorry, I couldn't save your reminder. Please try again.", err, sink)
	}
	sink.Speak(fmt.Sprintf("Reminder set for: %s - %s", timeSpec, task))
	return ok(domain.IntentReminder)
}

func (e *Engine) finishExchange(ctx context.Context, sink OutputSink) domain.Result {
	base := strings.ToUpper(strings.TrimSpace(e.dialogue.Value(SlotExchangeBase)))
	target := strings.ToUpper(strings.TrimSpace(e.dialogue.Value(SlotExchangeTarget)))
	quote, err := e.co.Market.ExchangeRate(ctx, base, target)
	if err != nil {
		return e.fail(domain.IntentExchangeRate,
			fmt.Sprintf("Sorry, I couldn't get the exchange rate from %s to %s.", base, target), err, sink)
	}
	sink.Speak(fmt.Sprintf("Exchange Rate: 1 %s = %.4f %s", base, quote.Rate, target))
	if !quote.LastUpdated.IsZero() {
		sink.Speak(fmt.Sprintf("Last Updated: %s", quote.LastUpdated.UTC().Format("2006-01-02 15:04:05 UTC")))
	}
	return ok(domain.IntentExchangeRate)
}

// fail speaks a single failure sentence and returns the dialogue to idle so
// the next command starts clean.
func (e *Engine) fail(intent domain.Intent, spoken string, err error, sink OutputSink) domain.Result {
	e.log.Warn("command failed",
		zap.String("intent", intent.String()),
		zap.Error(err))
	e.dialogue.Reset()
	sink.Speak(spoken)
	return domain.Result{Intent: intent, Success: false, Err: err}
}

func ok(intent domain.Intent) domain.Result {
	return domain.Result{Intent: intent, Success: true}
}
