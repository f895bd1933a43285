package out

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// EventBridgeAPI BusNotifier가 사용하는 EventBridge 클라이언트 동작의 부분 집합입니다.
type EventBridgeAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// BusNotifier 모든 엔티티 타입 처리가 끝났을 때 이벤트 버스로 완료 이벤트를 발행합니다.
type BusNotifier struct {
	client     EventBridgeAPI
	source     string
	detailType string
	busName    string
}

// NewBusNotifier 완료 이벤트 발행기를 생성합니다.
func NewBusNotifier(client EventBridgeAPI, source, detailType, busName string) *BusNotifier {
	return &BusNotifier{
		client:     client,
		source:     source,
		detailType: detailType,
		busName:    busName,
	}
}

// NotifyFinished 실행 날짜를 담은 완료 이벤트를 정확히 한 건 발행합니다.
// 발행에 실패한 엔트리가 있으면 오류로 전파합니다.
func (n *BusNotifier) NotifyFinished(ctx context.Context, date string) error {
	detail, err := json.Marshal(map[string]string{
		"status": "finished",
		"date":   date,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "완료 이벤트 본문 직렬화에 실패했습니다")
	}

	output, err := n.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				Source:       aws.String(n.source),
				DetailType:   aws.String(n.detailType),
				Detail:       aws.String(string(detail)),
				EventBusName: aws.String(n.busName),
			},
		},
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.System, "완료 이벤트 발행에 실패했습니다")
	}
	if output.FailedEntryCount > 0 {
		return apperrors.Newf(apperrors.System, "완료 이벤트 발행에 실패한 엔트리가 있습니다 (failed:%d)", output.FailedEntryCount)
	}

	applog.WithComponent("out.event").Infof("완료 이벤트를 발행했습니다 (date:%s)", date)
	return nil
}
