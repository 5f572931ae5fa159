package assistant

import (
	"testing"

	"github.com/seu-repo/aria/internal/domain"
)

func TestDialogue_SingleSlot(t *testing.T) {
	d := NewDialogue()

	d.Begin(domain.IntentWeather)
	d.Await(SlotWeatherCity, "Which city?")

	if d.Pending() != SlotWeatherCity {
		t.Errorf("pending = %q", d.Pending())
	}
	if d.Prompt() != "Which city?" {
		t.Errorf("prompt = %q", d.Prompt())
	}

	slot := d.Fill("London")
	if slot != SlotWeatherCity {
		t.Errorf("filled slot = %q", slot)
	}
	if d.Pending() != "" {
		t.Errorf("pending after fill = %q", d.Pending())
	}
	if d.Value(SlotWeatherCity) != "London" {
		t.Errorf("value = %q", d.Value(SlotWeatherCity))
	}
}

func TestDialogue_MultiSlotAccumulates(t *testing.T) {
	d := NewDialogue()

	d.Begin(domain.IntentEmail)
	d.Await(SlotEmailRecipient, "Recipient?")
	d.Fill("a@b.c")
	d.Await(SlotEmailSubject, "Subject?")
	d.Fill("Hello")
	d.Await(SlotEmailMessage, "Message?")
	d.Fill("Hi there")

	if d.Value(SlotEmailRecipient) != "a@b.c" ||
		d.Value(SlotEmailSubject) != "Hello" ||
		d.Value(SlotEmailMessage) != "Hi there" {
		t.Errorf("filled values lost: %q %q %q",
			d.Value(SlotEmailRecipient), d.Value(SlotEmailSubject), d.Value(SlotEmailMessage))
	}
	if d.Intent() != domain.IntentEmail {
		t.Errorf("intent = %v", d.Intent())
	}
}

func TestDialogue_BeginDiscardsPrevious(t *testing.T) {
	d := NewDialogue()

	d.Begin(domain.IntentEmail)
	d.Await(SlotEmailRecipient, "Recipient?")
	d.Fill("a@b.c")

	d.Begin(domain.IntentWeather)

	if d.Value(SlotEmailRecipient) != "" {
		t.Error("previous dialogue's slots survived Begin")
	}
	if d.Pending() != "" {
		t.Errorf("pending = %q", d.Pending())
	}
}

func TestDialogue_Reset(t *testing.T) {
	d := NewDialogue()

	d.Begin(domain.IntentWeather)
	d.Await(SlotWeatherCity, "Which city?")
	d.Reset()

	if d.Pending() != "" || d.Intent() != domain.IntentUnknown {
		t.Errorf("after reset: pending=%q intent=%v", d.Pending(), d.Intent())
	}
}
