package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"energycoach/internal/model"
)

// ErrInvalidTrigger marks an arrival event missing its required locator
// fields.
var ErrInvalidTrigger = errors.New("invalid trigger event")

// ParseTrigger validates the arrival event once at the boundary and returns
// the locator of the object the invocation must process. Object keys arrive
// URL-encoded with spaces as '+'.
func ParseTrigger(event events.S3Event) (model.TriggerLocator, error) {
	if len(event.Records) == 0 {
		return model.TriggerLocator{}, fmt.Errorf("%w: no records", ErrInvalidTrigger)
	}
	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	rawKey := record.S3.Object.Key
	if bucket == "" || rawKey == "" {
		return model.TriggerLocator{}, fmt.Errorf("%w: missing bucket or object key", ErrInvalidTrigger)
	}
	key, err := url.PathUnescape(strings.ReplaceAll(rawKey, "+", " "))
	if err != nil {
		return model.TriggerLocator{}, fmt.Errorf("%w: undecodable object key %q", ErrInvalidTrigger, rawKey)
	}
	return model.TriggerLocator{Bucket: bucket, Key: key}, nil
}
