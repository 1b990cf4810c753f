// posthog_client.go wraps posthog.Client so callers need not care whether analytics is configured.
package utils

import (
	"context"
	"log/slog"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper is a nil-safe analytics sink. A zero value drops every event.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns a wrapper; an empty apiKey yields a disabled one.
func InitializePosthogClient(apiKey string, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue sends an event in the background. Errors are logged, never returned.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// PaymentRecorded emits payment_recorded for a newly persisted payment.
func (w *PosthogClientWrapper) PaymentRecorded(_ context.Context, userID string, p domain.Payment) {
	w.Enqueue(userID, "payment_recorded", map[string]any{
		"payment_id":     p.PaymentID,
		"customer_id":    p.CustomerID,
		"payment_method": p.PaymentMethod.String(),
		"total_amount":   p.TotalAmount.String(),
		"contract_count": len(p.ContractIDs()),
	})
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	if err := w.posthogClient.Close(); err != nil && w.logger != nil {
		w.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
