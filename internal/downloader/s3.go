package downloader

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tidwall/gjson"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// S3API S3Downloader가 사용하는 S3 클라이언트 동작의 부분 집합입니다.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Downloader 백업 버킷의 `{date}/{db}/{relation}` 접두어 아래 JSON 오브젝트들을
// 읽어 직전 실행의 상용 레코드를 복원합니다.
type S3Downloader struct {
	client S3API
	bucket string
}

var _ Downloader = (*S3Downloader)(nil)

// NewS3Downloader 백업 버킷을 읽는 다운로더를 생성합니다.
func NewS3Downloader(client S3API, bucket string) *S3Downloader {
	return &S3Downloader{client: client, bucket: bucket}
}

// Download 지정된 날짜/DB/릴레이션의 백업 오브젝트 전체를 디코딩하여 반환합니다.
// 접두어 아래 오브젝트가 하나도 없으면 빈 목록을 반환합니다. (오류 아님)
func (d *S3Downloader) Download(ctx context.Context, dbName, relName, date string) ([]map[string]any, error) {
	prefix := fmt.Sprintf("%s/%s/%s", date, dbName, relName)

	keys, err := d.listKeys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		applog.WithComponent("downloader.s3").Infof("'%s' 접두어 아래 백업 오브젝트가 없습니다", prefix)
		return nil, nil
	}

	var records []map[string]any
	for _, key := range keys {
		decoded, err := d.downloadObject(ctx, key)
		if err != nil {
			return nil, err
		}
		records = append(records, decoded...)
	}

	return records, nil
}

func (d *S3Downloader) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var (
		keys  []string
		token *string
	)

	for {
		output, err := d.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(d.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("백업 오브젝트 목록 조회에 실패했습니다 (bucket:%s, prefix:%s)", d.bucket, prefix))
		}

		for _, object := range output.Contents {
			key := aws.ToString(object.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			keys = append(keys, key)
		}

		if output.IsTruncated == nil || !*output.IsTruncated {
			break
		}
		token = output.NextContinuationToken
	}

	return keys, nil
}

func (d *S3Downloader) downloadObject(ctx context.Context, key string) ([]map[string]any, error) {
	output, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("백업 오브젝트 다운로드에 실패했습니다 (key:%s)", key))
	}
	defer output.Body.Close()

	body, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("백업 오브젝트 읽기에 실패했습니다 (key:%s)", key))
	}

	return decodeRecords(key, body)
}

// decodeRecords JSON 본문을 레코드 목록으로 디코딩합니다.
// 본문이 배열이면 원소들을, 단일 오브젝트면 한 건짜리 목록을 반환합니다.
func decodeRecords(key string, body []byte) ([]map[string]any, error) {
	if !gjson.ValidBytes(body) {
		return nil, apperrors.Newf(apperrors.ParsingFailed, "백업 오브젝트가 유효한 JSON이 아닙니다 (key:%s)", key)
	}

	parsed := gjson.ParseBytes(body)

	var records []map[string]any
	appendRecord := func(value gjson.Result) error {
		record, ok := value.Value().(map[string]any)
		if !ok {
			return apperrors.Newf(apperrors.ParsingFailed, "백업 오브젝트 원소가 JSON 오브젝트가 아닙니다 (key:%s)", key)
		}
		records = append(records, record)
		return nil
	}

	if parsed.IsArray() {
		for _, element := range parsed.Array() {
			if err := appendRecord(element); err != nil {
				return nil, err
			}
		}
		return records, nil
	}

	if err := appendRecord(parsed); err != nil {
		return nil, err
	}
	return records, nil
}
