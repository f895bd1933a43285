// Package out 정제 결과를 외부로 내보내는 출력 계층입니다.
// 오브젝트 스토어 벌크 기록, 업데이트 의도 큐 통지, 완료 이벤트 발행을 담당합니다.
package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"

	"github.com/pyoniverse/etl-transform/internal/domain"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
	"github.com/pyoniverse/etl-transform/pkg/strutil"
)

// batchSize 오브젝트 하나에 담는 레코드 수입니다. 다운스트림 적재기가 이 단위로 읽습니다.
const batchSize = 100

// putRatePerSecond 초당 PutObject 호출 수 상한입니다.
const putRatePerSecond = 10

// S3API S3Writer가 사용하는 S3 클라이언트 동작의 부분 집합입니다.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer 최종 레코드 목록을 고정 크기 배치로 쪼개 오브젝트 스토어에 기록합니다.
//
// `{prefix}/{relation}_{idx}.json` 오브젝트들과 변경 목록을 담은
// `{prefix}/{relation}_updated.json` 하나를 기록하고, 기록한 키 전체를 반환합니다.
type S3Writer struct {
	client  S3API
	bucket  string
	prefix  string
	limiter *rate.Limiter
}

// NewS3Writer 벌크 기록기를 생성합니다.
func NewS3Writer(client S3API, bucket, prefix string) *S3Writer {
	return &S3Writer{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		limiter: rate.NewLimiter(rate.Limit(putRatePerSecond), 1),
	}
}

// Write 파이프라인 결과를 배치 오브젝트들과 변경 목록 오브젝트로 기록합니다.
func (w *S3Writer) Write(ctx context.Context, relName string, result *domain.Result) ([]string, error) {
	data := result.Data
	keys := make([]string, 0, len(data)/batchSize+2)

	for idx := 0; idx*batchSize < len(data); idx++ {
		begin := idx * batchSize
		end := min(begin+batchSize, len(data))

		key := fmt.Sprintf("%s/%s_%d.json", w.prefix, relName, idx)
		if err := w.putJSON(ctx, key, data[begin:end]); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	key := fmt.Sprintf("%s/%s_updated.json", w.prefix, relName)
	if err := w.putJSON(ctx, key, result.Updated); err != nil {
		return nil, err
	}
	keys = append(keys, key)

	applog.WithComponent("out.s3").Infof("'%s' 릴레이션 %s건을 %d개 오브젝트로 기록했습니다", relName, strutil.FormatCommas(len(data)), len(keys))

	return keys, nil
}

func (w *S3Writer) putJSON(ctx context.Context, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.Internal, "오브젝트 본문 직렬화에 실패했습니다 (key:%s)", key)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ExecutionFailed, "오브젝트 기록이 중단되었습니다")
	}

	_, err = w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return apperrors.Wrapf(err, apperrors.System, "오브젝트 기록에 실패했습니다 (bucket:%s, key:%s)", w.bucket, key)
	}

	return nil
}
