package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"energycoach/internal/config"
	"energycoach/internal/model"
)

// ErrPublish wraps failures handing a change event to the notification sink.
var ErrPublish = errors.New("notification publish failed")

// Notifier is the boundary to the notification sink. Delivery and retry are
// the sink's responsibility.
type Notifier interface {
	Publish(ctx context.Context, subject string, msg model.Notification) error
	Close() error
}

// New builds the configured notifier, constructing clients per call.
func New(ctx context.Context, cfg config.NotifierConfig, logger *slog.Logger) (Notifier, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sns":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return NewSNS(sns.NewFromConfig(awsCfg), cfg.TopicARN), nil
	case "kafka":
		return NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	case "log":
		return NewLog(logger), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported notifier driver %q", cfg.Driver)
	}
}

// Subject builds the notification subject line for one customer and month.
func Subject(customerName, month string) string {
	return fmt.Sprintf("Energy Usage Summary for %s - %s", customerName, month)
}

func publishErr(err error) error {
	return fmt.Errorf("%w: %v", ErrPublish, err)
}
