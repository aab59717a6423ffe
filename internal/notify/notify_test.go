package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/model"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

var checkIn = model.Alert{
	ID:      "checkin-FR5523",
	Type:    model.AlertFlight,
	Title:   "Check-in Reminder: FR5523",
	Message: "Online check-in is now open for your flight.",
	Urgency: model.UrgencyHigh,
}

func TestNotifyPublishes(t *testing.T) {
	fp := &fakePublisher{}
	n := NewSNSNotifier(fp, "arn:aws:sns:eu-central-1:123:trip", "Poland Trip")

	require.NoError(t, n.Notify(context.Background(), []model.Alert{checkIn}))
	require.Len(t, fp.inputs, 1)
	in := fp.inputs[0]
	assert.Equal(t, "arn:aws:sns:eu-central-1:123:trip", aws.ToString(in.TopicArn))
	assert.Equal(t, "Poland Trip: 1 urgent alert", aws.ToString(in.Subject))
	assert.Equal(t, "[HIGH] Check-in Reminder: FR5523\nOnline check-in is now open for your flight.", aws.ToString(in.Message))
}

func TestNotifyEmptyBatch(t *testing.T) {
	fp := &fakePublisher{}
	require.NoError(t, NewSNSNotifier(fp, "arn", "").Notify(context.Background(), nil))
	assert.Empty(t, fp.inputs)
}

func TestNotifyError(t *testing.T) {
	fp := &fakePublisher{err: errors.New("throttled")}
	err := NewSNSNotifier(fp, "arn", "").Notify(context.Background(), []model.Alert{checkIn, checkIn})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, "Trip: 2 urgent alerts", aws.ToString(fp.inputs[0].Subject))
}

func TestFromEnvironmentWithoutTopic(t *testing.T) {
	n, err := FromEnvironment(context.Background(), "", "trip")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestMessageJoinsAlerts(t *testing.T) {
	low := model.Alert{Title: "Pack", Message: "Start packing.", Urgency: model.UrgencyLow}
	assert.Equal(t,
		"[HIGH] Check-in Reminder: FR5523\nOnline check-in is now open for your flight.\n\n[LOW] Pack\nStart packing.",
		Message([]model.Alert{checkIn, low}))
}
