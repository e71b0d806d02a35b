package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = in
	return &sqs.SendMessageOutput{}, f.err
}

func TestSQSClientSend(t *testing.T) {
	fake := &fakeSQS{}
	client := NewSQSClientWithAPI(fake, "https://sqs.us-east-1.amazonaws.com/123/reports")

	err := client.Send(context.Background(), Message{Type: TypeReportDeliver, JobID: "job-1", Version: CurrentVersion})
	require.NoError(t, err)
	require.NotNil(t, fake.input)
	assert.Equal(t, "https://sqs.us-east-1.amazonaws.com/123/reports", aws.ToString(fake.input.QueueUrl))

	decoded, err := DecodeMessage([]byte(aws.ToString(fake.input.MessageBody)))
	require.NoError(t, err)
	assert.Equal(t, "job-1", decoded.JobID)
}

func TestSQSClientSendError(t *testing.T) {
	sendErr := errors.New("throttled")
	client := NewSQSClientWithAPI(&fakeSQS{err: sendErr}, "q")
	err := client.Send(context.Background(), Message{Type: TypeReportDeliver})
	assert.ErrorIs(t, err, sendErr)
}
