package out

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeSQS 전송된 메시지를 큐 이름별로 쌓는 테스트용 SQS 클라이언트입니다.
type fakeSQS struct {
	sent    map[string][]string // queueName -> bodies
	sendErr error
}

func (f *fakeSQS) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	url := "https://sqs.example.com/" + aws.ToString(params.QueueName)
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String(url)}, nil
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sent == nil {
		f.sent = make(map[string][]string)
	}
	queueName := aws.ToString(params.QueueUrl)
	f.sent[queueName] = append(f.sent[queueName], aws.ToString(params.MessageBody))
	return &sqs.SendMessageOutput{}, nil
}

func TestQueueNotifier(t *testing.T) {
	t.Parallel()

	t.Run("업데이트 의도 메시지는 정확히 한 건", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{}
		notifier := NewQueueNotifier(client, "update-queue", "ops-queue", nil)

		err := notifier.NotifyUpdate(context.Background(), "2023-09-14", "service", "products",
			[]string{"2023-09-14/service/products_0.json"})

		require.NoError(t, err)
		bodies := client.sent["https://sqs.example.com/update-queue"]
		require.Len(t, bodies, 1)

		message := gjson.Parse(bodies[0])
		assert.Equal(t, "2023-09-14", message.Get("date").String())
		assert.Equal(t, "service", message.Get("db_name").String())
		assert.Equal(t, "products", message.Get("rel_name").String())
		assert.Equal(t, "transform", message.Get("origin").String())
		require.Len(t, message.Get("data").Array(), 1)
	})

	t.Run("운영 메시지에 발신자와 멘션 대상 포함", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{}
		notifier := NewQueueNotifier(client, "update-queue", "ops-queue", []string{"데이터팀"})

		err := notifier.NotifySuccess(context.Background(), map[string]any{"date": "2023-09-14"})

		require.NoError(t, err)
		bodies := client.sent["https://sqs.example.com/ops-queue"]
		require.Len(t, bodies, 1)

		message := gjson.Parse(bodies[0])
		assert.Equal(t, "success", message.Get("type").String())
		assert.Equal(t, "pyoniverse-etl-transform", message.Get("source").String())
		assert.Equal(t, "데이터팀", message.Get("cc.0").String())
	})

	t.Run("전송 실패는 오류로 전파", func(t *testing.T) {
		t.Parallel()

		client := &fakeSQS{sendErr: errors.New("boom")}
		notifier := NewQueueNotifier(client, "update-queue", "ops-queue", nil)

		err := notifier.NotifyUpdate(context.Background(), "2023-09-14", "service", "products", nil)

		assert.Error(t, err)
	})
}
