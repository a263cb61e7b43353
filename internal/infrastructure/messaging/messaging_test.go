package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

func sampleEvent() entity.AlertEvent {
	return entity.AlertEvent{
		AlertID:     42,
		AlertType:   entity.AlertTypeOutbreak,
		Title:       "Dengue cases rising",
		Message:     "Avoid stagnant water",
		Severity:    entity.SeverityCritical,
		Zones:       []string{"Zone A"},
		PublishedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestAlertMessage(t *testing.T) {
	msg, err := alertMessage(sampleEvent())
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if string(msg.Key) != "42" {
		t.Errorf("expected key 42, got %q", msg.Key)
	}

	var decoded entity.AlertEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	if decoded.Title != "Dengue cases rising" || len(decoded.Zones) != 1 {
		t.Errorf("unexpected payload %+v", decoded)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[0].Value) != entity.SeverityCritical {
		t.Errorf("unexpected headers %+v", msg.Headers)
	}
}

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSAlertPublisher_Publish(t *testing.T) {
	fake := &fakeSQS{}
	publisher := newSQSAlertPublisher(fake, "https://sqs.local/alerts")

	if err := publisher.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if fake.input == nil || *fake.input.QueueUrl != "https://sqs.local/alerts" {
		t.Fatalf("unexpected input %+v", fake.input)
	}

	var decoded entity.AlertEvent
	if err := json.Unmarshal([]byte(*fake.input.MessageBody), &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.AlertID != 42 {
		t.Errorf("expected alert 42, got %d", decoded.AlertID)
	}
	if got := *fake.input.MessageAttributes["severity"].StringValue; got != entity.SeverityCritical {
		t.Errorf("expected severity attribute, got %q", got)
	}
}

func TestSQSAlertPublisher_WrapsError(t *testing.T) {
	sendErr := errors.New("throttled")
	publisher := newSQSAlertPublisher(&fakeSQS{err: sendErr}, "q")

	err := publisher.Publish(context.Background(), sampleEvent())
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
