package downloader

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// fakeS3 버킷 내용을 메모리 맵으로 흉내내는 테스트용 S3 클라이언트입니다.
type fakeS3 struct {
	objects map[string]string // key -> body
}

func (f *fakeS3) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var contents []types.Object
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(params.Prefix)) {
			contents = append(contents, types.Object{Key: aws.String(key)})
		}
	}
	return &s3.ListObjectsV2Output{Contents: contents, IsTruncated: aws.Bool(false)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body := f.objects[aws.ToString(params.Key)]
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3DownloaderDownload(t *testing.T) {
	t.Parallel()

	t.Run("접두어 아래 JSON 오브젝트들을 모두 디코딩", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{objects: map[string]string{
			"2023-09-14/service/products_0.json": `[{"name":"우유"},{"name":"콜라"}]`,
			"2023-09-14/service/products_1.json": `[{"name":"빵"}]`,
			"2023-09-14/service/products.txt":    `ignored`,
		}}
		downloader := NewS3Downloader(client, "backup-bucket")

		records, err := downloader.Download(context.Background(), "service", "products", "2023-09-14")

		require.NoError(t, err)
		require.Len(t, records, 3)

		var names []string
		for _, record := range records {
			names = append(names, record["name"].(string))
		}
		assert.ElementsMatch(t, []string{"우유", "콜라", "빵"}, names)
	})

	t.Run("오브젝트가 없으면 빈 결과이며 오류가 아님", func(t *testing.T) {
		t.Parallel()

		downloader := NewS3Downloader(&fakeS3{objects: map[string]string{}}, "backup-bucket")

		records, err := downloader.Download(context.Background(), "service", "products", "2023-09-14")

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("손상된 JSON은 파싱 오류", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{objects: map[string]string{
			"2023-09-14/service/products_0.json": `{"name": broken`,
		}}
		downloader := NewS3Downloader(client, "backup-bucket")

		_, err := downloader.Download(context.Background(), "service", "products", "2023-09-14")

		require.Error(t, err)
		assert.Equal(t, apperrors.ParsingFailed, apperrors.UnderlyingType(err))
	})
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	t.Run("단일 오브젝트는 한 건짜리 목록", func(t *testing.T) {
		t.Parallel()

		records, err := decodeRecords("key.json", []byte(`{"name":"우유"}`))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "우유", records[0]["name"])
	})

	t.Run("배열 원소가 오브젝트가 아니면 파싱 오류", func(t *testing.T) {
		t.Parallel()

		_, err := decodeRecords("key.json", []byte(`[1, 2, 3]`))

		require.Error(t, err)
		assert.Equal(t, apperrors.ParsingFailed, apperrors.UnderlyingType(err))
	})
}
