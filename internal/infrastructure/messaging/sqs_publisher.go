package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// SQSSender is the subset of the SQS client used for publishing.
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSAlertPublisher sends alert events to an SQS queue.
type SQSAlertPublisher struct {
	client   SQSSender
	queueURL string
}

func NewSQSAlertPublisher(awsCfg aws.Config, queueURL string) *SQSAlertPublisher {
	client := sqs.New(sqs.Options{
		Region:       awsCfg.Region,
		Credentials:  awsCfg.Credentials,
		HTTPClient:   awsCfg.HTTPClient,
		BaseEndpoint: awsCfg.BaseEndpoint,
	})
	return newSQSAlertPublisher(client, queueURL)
}

func newSQSAlertPublisher(client SQSSender, queueURL string) *SQSAlertPublisher {
	return &SQSAlertPublisher{client: client, queueURL: queueURL}
}

func (p *SQSAlertPublisher) Publish(ctx context.Context, event entity.AlertEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"severity": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.Severity),
			},
			"alert_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.AlertType),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send alert %d to sqs: %w", event.AlertID, err)
	}
	return nil
}

func (p *SQSAlertPublisher) Close() error {
	return nil
}
