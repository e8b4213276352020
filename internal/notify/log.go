package notify

import (
	"context"
	"log/slog"

	"energycoach/internal/model"
)

// logNotifier writes change events to the logger only. Default sink for
// local runs.
type logNotifier struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Publish(ctx context.Context, subject string, msg model.Notification) error {
	if n.logger != nil {
		n.logger.Info("notification",
			"subject", subject,
			"location_id", msg.Location.LocationID,
			"month", msg.Month,
			"status", msg.Status,
			"total_kwh", msg.Summary.TotalKwh,
		)
	}
	return nil
}

func (n *logNotifier) Close() error { return nil }
