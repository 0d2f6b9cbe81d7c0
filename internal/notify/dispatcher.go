package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/safespot/safespot-backend/internal/models"
)

// Alert is the payload raised when abnormal motion is detected. The core
// classifier only emits this event; message construction and delivery happen
// here.
type Alert struct {
	UserID    string
	Latitude  float64
	Longitude float64
	Intensity string
}

// Message renders the alert text sent to every protector.
func (a Alert) Message() string {
	reason := a.Intensity
	if reason == "" {
		reason = "Unknown"
	}
	return fmt.Sprintf("SOS ALERT\nUser: %s\nReason: %s\nLocation: https://maps.google.com/?q=%f,%f",
		a.UserID, reason, a.Latitude, a.Longitude)
}

// Dispatcher fans an alert out to a user's protectors over the configured
// channels.
type Dispatcher struct {
	SMS      *Fast2SMSClient
	WhatsApp *WhatsAppClient
}

// NewDispatcher creates a dispatcher over the given channel clients.
func NewDispatcher(sms *Fast2SMSClient, whatsapp *WhatsAppClient) *Dispatcher {
	return &Dispatcher{SMS: sms, WhatsApp: whatsapp}
}

// Dispatch sends the alert to every protector with a phone number. Channel
// failures are logged and do not abort the remaining sends; the returned
// count is the number of protectors reached on at least one channel.
func (d *Dispatcher) Dispatch(ctx context.Context, alert Alert, protectors []models.Protector) int {
	message := alert.Message()

	numbers := make([]string, 0, len(protectors))
	for _, p := range protectors {
		if p.Phone != "" {
			numbers = append(numbers, p.Phone)
		}
	}
	if len(numbers) == 0 {
		log.Printf("[notify] no protector phone numbers for user %s, nothing sent", alert.UserID)
		return 0
	}

	delivered := make(map[string]bool)
	if d.SMS != nil && d.SMS.Configured() {
		if err := d.SMS.Send(ctx, numbers, message); err != nil {
			log.Printf("[notify] sms dispatch failed for user %s: %v", alert.UserID, err)
		} else {
			for _, n := range numbers {
				delivered[n] = true
			}
		}
	}

	if d.WhatsApp != nil && d.WhatsApp.Configured() {
		for _, n := range numbers {
			if err := d.WhatsApp.Send(ctx, n, message); err != nil {
				log.Printf("[notify] whatsapp dispatch to %s failed for user %s: %v", n, alert.UserID, err)
				continue
			}
			delivered[n] = true
		}
	}

	return len(delivered)
}
