package domain

// Intent identifies what the user wants the assistant to do. The zero value
// is IntentUnknown so an unresolved command never aliases a real action.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentStop
	IntentGreeting
	IntentHowAreYou
	IntentOpenCommandPrompt
	IntentOpenCamera
	IntentOpenNotepad
	IntentOpenDiscord
	IntentOpenVSCode
	IntentIPAddress
	IntentYouTube
	IntentGoogleSearch
	IntentWikipedia
	IntentNews
	IntentWeather
	IntentEmail
	IntentReminder
	IntentStockPrice
	IntentExchangeRate
	IntentGeneratePassword
	IntentCryptoPrice
	IntentBatteryStatus
	IntentCurrentTime
	IntentDateTime
	IntentAskGPT
	IntentAskAI
)

var intentNames = map[Intent]string{
	IntentUnknown:           "unknown",
	IntentStop:              "stop",
	IntentGreeting:          "greeting",
	IntentHowAreYou:         "how_are_you",
	IntentOpenCommandPrompt: "open_command_prompt",
	IntentOpenCamera:        "open_camera",
	IntentOpenNotepad:       "open_notepad",
	IntentOpenDiscord:       "open_discord",
	IntentOpenVSCode:        "open_vscode",
	IntentIPAddress:         "ip_address",
	IntentYouTube:           "youtube_search",
	IntentGoogleSearch:      "google_search",
	IntentWikipedia:         "wikipedia",
	IntentNews:              "news",
	IntentWeather:           "weather",
	IntentEmail:             "send_email",
	IntentReminder:          "set_reminder",
	IntentStockPrice:        "stock_price",
	IntentExchangeRate:      "exchange_rate",
	IntentGeneratePassword:  "generate_password",
	IntentCryptoPrice:       "crypto_price",
	IntentBatteryStatus:     "battery_status",
	IntentCurrentTime:       "current_time",
	IntentDateTime:          "date_time",
	IntentAskGPT:            "ask_gpt",
	IntentAskAI:             "ask_ai",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}
