package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"

	"skyflyBff/internal/modules/payments/application/port"
	"skyflyBff/internal/modules/payments/domain"
)

// SQSEventPublisher enqueues payment events on a named SQS queue. The queue
// URL is resolved on first use.
type SQSEventPublisher struct {
	client sqsiface.SQSAPI
	queue  string

	mu       sync.Mutex
	queueURL *string
}

func NewSQSEventPublisher(client sqsiface.SQSAPI, queue string) *SQSEventPublisher {
	return &SQSEventPublisher{client: client, queue: queue}
}

func (p *SQSEventPublisher) Publish(ctx context.Context, event domain.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode payment event: %w", err)
	}

	queueURL, err := p.resolveQueueURL(ctx)
	if err != nil {
		return err
	}

	_, err = p.client.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		MessageBody: aws.String(string(body)),
		QueueUrl:    queueURL,
		MessageAttributes: map[string]*sqs.MessageAttributeValue{
			"method": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Method)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send payment event %s: %w", event.ID, err)
	}
	return nil
}

func (p *SQSEventPublisher) resolveQueueURL(ctx context.Context) (*string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.queueURL != nil {
		return p.queueURL, nil
	}
	out, err := p.client.GetQueueUrlWithContext(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(p.queue),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve queue %s: %w", p.queue, err)
	}
	p.queueURL = out.QueueUrl
	return p.queueURL, nil
}

// NopPublisher drops every event. It is used when no broker or queue is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.PaymentEvent) error { return nil }

var (
	_ port.EventPublisher = (*SQSEventPublisher)(nil)
	_ port.EventPublisher = NopPublisher{}
)
