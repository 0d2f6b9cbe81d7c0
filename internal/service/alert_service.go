package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/safespot/safespot-backend/internal/notify"
	"github.com/safespot/safespot-backend/internal/repository"
)

// ErrNoProtectors is returned when a user has no contacts to notify.
var ErrNoProtectors = errors.New("no protectors found")

// alertTimeout bounds one dispatch attempt, independent of the request that
// raised it.
const alertTimeout = 15 * time.Second

// AlertService resolves a user's protectors and dispatches alert messages.
type AlertService struct {
	protectorRepo *repository.ProtectorRepository
	dispatcher    *notify.Dispatcher
}

// NewAlertService creates a new alert service
func NewAlertService(protectorRepo *repository.ProtectorRepository, dispatcher *notify.Dispatcher) *AlertService {
	return &AlertService{
		protectorRepo: protectorRepo,
		dispatcher:    dispatcher,
	}
}

// Trigger dispatches an alert synchronously and reports how many protectors
// were reached. Used by the explicit SOS route.
func (s *AlertService) Trigger(ctx context.Context, alert notify.Alert) (int, error) {
	protectors, err := s.protectorRepo.GetByUser(alert.UserID)
	if err != nil {
		return 0, err
	}
	if len(protectors) == 0 {
		return 0, ErrNoProtectors
	}

	return s.dispatcher.Dispatch(ctx, alert, protectors), nil
}

// NotifyAbnormal dispatches an alert in the background so sample ingestion
// never blocks on outbound messaging. Failures are logged, never retried.
func (s *AlertService) NotifyAbnormal(alert notify.Alert) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()

		reached, err := s.Trigger(ctx, alert)
		if err != nil {
			log.Printf("[alert] background dispatch for user %s failed: %v", alert.UserID, err)
			return
		}
		log.Printf("[alert] abnormal-motion alert for user %s reached %d protectors", alert.UserID, reached)
	}()
}
