package out

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// messageSource 큐 메시지에 찍는 발신자 식별자입니다.
const messageSource = "pyoniverse-etl-transform"

// SQSAPI QueueNotifier가 사용하는 SQS 클라이언트 동작의 부분 집합입니다.
type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// UpdateMessage 릴레이션 하나의 변경 사실을 적재기에 알리는 업데이트 의도 메시지입니다.
type UpdateMessage struct {
	Date    string   `json:"date"`
	DBName  string   `json:"db_name"`
	RelName string   `json:"rel_name"`
	Origin  string   `json:"origin"`
	Data    []string `json:"data"` // 기록된 오브젝트 키 목록
}

// OpsMessage 운영 채널(슬랙 중계 큐)로 보내는 실행 결과 메시지입니다.
type OpsMessage struct {
	Type   string         `json:"type"` // success | error
	Source string         `json:"source"`
	Text   string         `json:"text"`
	CC     []string       `json:"cc"`
	PS     map[string]any `json:"ps"`
}

// QueueNotifier 업데이트 의도와 운영 메시지를 각각의 큐로 전송합니다.
type QueueNotifier struct {
	client          sqsClientResolver
	updateQueueName string
	opsQueueName    string
	cc              []string
}

// sqsClientResolver 큐 이름 -> URL 해석 결과를 캐시하지 않고 매번 조회하는 래퍼입니다.
// 배치는 큐당 한두 번만 전송하므로 캐시가 필요 없습니다.
type sqsClientResolver struct {
	api SQSAPI
}

// NewQueueNotifier 큐 통지기를 생성합니다. cc는 운영 메시지에 멘션할 대상 목록입니다.
func NewQueueNotifier(api SQSAPI, updateQueueName, opsQueueName string, cc []string) *QueueNotifier {
	return &QueueNotifier{
		client:          sqsClientResolver{api: api},
		updateQueueName: updateQueueName,
		opsQueueName:    opsQueueName,
		cc:              cc,
	}
}

// NotifyUpdate 릴레이션 하나의 업데이트 의도 메시지를 정확히 한 건 전송합니다.
// 전송 실패는 파이프라인 실패로 전파됩니다.
func (n *QueueNotifier) NotifyUpdate(ctx context.Context, date, dbName, relName string, objectKeys []string) error {
	message := UpdateMessage{
		Date:    date,
		DBName:  dbName,
		RelName: relName,
		Origin:  "transform",
		Data:    objectKeys,
	}

	if err := n.client.send(ctx, n.updateQueueName, message); err != nil {
		return err
	}

	applog.WithComponent("out.sqs").Infof("'%s' 릴레이션의 업데이트 의도 메시지를 전송했습니다 (keys:%d)", relName, len(objectKeys))
	return nil
}

// NotifySuccess 실행 성공을 운영 채널에 알립니다.
func (n *QueueNotifier) NotifySuccess(ctx context.Context, ps map[string]any) error {
	return n.client.send(ctx, n.opsQueueName, OpsMessage{
		Type:   "success",
		Source: messageSource,
		Text:   "Success",
		CC:     n.cc,
		PS:     ps,
	})
}

// NotifyError 실행 실패를 운영 채널에 알립니다.
func (n *QueueNotifier) NotifyError(ctx context.Context, cause error, ps map[string]any) error {
	return n.client.send(ctx, n.opsQueueName, OpsMessage{
		Type:   "error",
		Source: messageSource,
		Text:   cause.Error(),
		CC:     n.cc,
		PS:     ps,
	})
}

func (r sqsClientResolver) send(ctx context.Context, queueName string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "큐 메시지 직렬화에 실패했습니다")
	}

	queueURL, err := r.api.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("'%s' 큐 URL 조회에 실패했습니다", queueName))
	}

	_, err = r.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    queueURL.QueueUrl,
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("'%s' 큐 메시지 전송에 실패했습니다", queueName))
	}

	return nil
}
