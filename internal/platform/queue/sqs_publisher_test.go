package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skyflyBff/internal/modules/payments/domain"
)

type SQSMock struct {
	sqsiface.SQSAPI
	mock.Mock
}

func (m *SQSMock) GetQueueUrlWithContext(_ aws.Context, in *sqs.GetQueueUrlInput, _ ...request.Option) (*sqs.GetQueueUrlOutput, error) {
	ret := m.Called(aws.StringValue(in.QueueName))
	out, _ := ret.Get(0).(*sqs.GetQueueUrlOutput)
	return out, ret.Error(1)
}

func (m *SQSMock) SendMessageWithContext(_ aws.Context, in *sqs.SendMessageInput, _ ...request.Option) (*sqs.SendMessageOutput, error) {
	ret := m.Called(aws.StringValue(in.QueueUrl), aws.StringValue(in.MessageBody))
	out, _ := ret.Get(0).(*sqs.SendMessageOutput)
	return out, ret.Error(1)
}

var event = domain.PaymentEvent{
	ID:         "evt-1",
	Method:     domain.MethodGopay,
	FlightID:   "f-1",
	OK:         true,
	OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
}

const eventBody = `{"id":"evt-1","method":"gopay","flightId":"f-1","ok":true,"occurredAt":"2026-03-01T10:00:00Z"}`

func TestSQSEventPublisher_Publish(t *testing.T) {
	tests := []struct {
		name    string
		mocker  func(m *SQSMock)
		publish int
		wantErr bool
	}{
		{
			name: "queue url resolved once",
			mocker: func(m *SQSMock) {
				m.On("GetQueueUrlWithContext", "payments").Return(&sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/payments")}, nil).Once()
				m.On("SendMessageWithContext", "https://sqs.local/payments", eventBody).Return(&sqs.SendMessageOutput{}, nil).Twice()
			},
			publish: 2,
		},
		{
			name: "queue lookup failure",
			mocker: func(m *SQSMock) {
				m.On("GetQueueUrlWithContext", "payments").Return(nil, errors.New("no such queue")).Once()
			},
			publish: 1,
			wantErr: true,
		},
		{
			name: "send failure",
			mocker: func(m *SQSMock) {
				m.On("GetQueueUrlWithContext", "payments").Return(&sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/payments")}, nil).Once()
				m.On("SendMessageWithContext", "https://sqs.local/payments", eventBody).Return(nil, errors.New("throttled")).Once()
			},
			publish: 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &SQSMock{}
			tt.mocker(client)
			publisher := NewSQSEventPublisher(client, "payments")

			for i := 0; i < tt.publish; i++ {
				err := publisher.Publish(context.Background(), event)
				if tt.wantErr {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
				}
			}
			client.AssertExpectations(t)
		})
	}
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, NopPublisher{}.Publish(context.Background(), event))
}
