// Package notify publishes freshly generated high-urgency alerts to an SNS
// topic.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	appLog "tripboard/internal/log"
	"tripboard/internal/model"
)

// Publisher is the part of *sns.Client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier sends one message per batch of alerts.
type SNSNotifier struct {
	client   Publisher
	topicARN string
	trip     string
}

// NewSNSNotifier wraps an existing client.
func NewSNSNotifier(client Publisher, topicARN, trip string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, trip: trip}
}

// FromEnvironment builds a notifier from the default AWS credential chain.
// An empty topic disables notifications and returns (nil, nil).
func FromEnvironment(ctx context.Context, topicARN, trip string) (*SNSNotifier, error) {
	if topicARN == "" {
		return nil, nil
	}
	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	return NewSNSNotifier(sns.NewFromConfig(cfg), topicARN, trip), nil
}

// Notify publishes alerts as a single message. An empty batch is a no-op.
func (n *SNSNotifier) Notify(ctx context.Context, alerts []model.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	if n.topicARN == "" {
		return errors.New("no SNS topic configured")
	}

	in := &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(subject(n.trip, len(alerts))),
		Message:  aws.String(Message(alerts)),
	}
	out, err := n.client.Publish(ctx, in)
	if err != nil {
		return fmt.Errorf("error publishing to SNS topic %s: %w", n.topicARN, err)
	}
	appLog.Info("alerts published", "topic", n.topicARN, "count", len(alerts), "message_id", aws.ToString(out.MessageId))
	return nil
}

func subject(trip string, n int) string {
	if trip == "" {
		trip = "Trip"
	}
	if n == 1 {
		return trip + ": 1 urgent alert"
	}
	return fmt.Sprintf("%s: %d urgent alerts", trip, n)
}

// Message renders alerts as plain text, one block per alert.
func Message(alerts []model.Alert) string {
	var b strings.Builder
	for i, a := range alerts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s] %s\n%s", strings.ToUpper(string(a.Urgency)), a.Title, a.Message)
	}
	return b.String()
}
