package notify

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"energycoach/internal/model"
)

type snsNotifier struct {
	client   *sns.Client
	topicARN string
}

func NewSNS(client *sns.Client, topicARN string) Notifier {
	return &snsNotifier{client: client, topicARN: topicARN}
}

func (n *snsNotifier) Publish(ctx context.Context, subject string, msg model.Notification) error {
	body, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return publishErr(err)
	}
	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return publishErr(err)
	}
	return nil
}

func (n *snsNotifier) Close() error { return nil }
