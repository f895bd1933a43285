package out

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/pyoniverse/etl-transform/internal/domain"
)

// fakeS3 기록된 오브젝트를 메모리에 쌓는 테스트용 S3 클라이언트입니다.
type fakeS3 struct {
	objects map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[aws.ToString(params.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterWrite(t *testing.T) {
	t.Parallel()

	t.Run("100건 단위 배치와 변경 목록 기록", func(t *testing.T) {
		t.Parallel()

		result := &domain.Result{Updated: []string{"커피우유(500.0ml)"}}
		for i := 0; i < 150; i++ {
			result.Data = append(result.Data, map[string]any{"idx": i})
		}

		client := &fakeS3{}
		writer := NewS3Writer(client, "service-bucket", "2023-09-14/service")

		keys, err := writer.Write(context.Background(), "products", result)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"2023-09-14/service/products_0.json",
			"2023-09-14/service/products_1.json",
			"2023-09-14/service/products_updated.json",
		}, keys)

		first := gjson.Parse(client.objects["2023-09-14/service/products_0.json"])
		second := gjson.Parse(client.objects["2023-09-14/service/products_1.json"])
		assert.Len(t, first.Array(), 100)
		assert.Len(t, second.Array(), 50)

		updated := gjson.Parse(client.objects["2023-09-14/service/products_updated.json"])
		require.Len(t, updated.Array(), 1)
		assert.Equal(t, "커피우유(500.0ml)", updated.Array()[0].String())
	})

	t.Run("빈 결과도 변경 목록 오브젝트는 기록", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{}
		writer := NewS3Writer(client, "service-bucket", "2023-09-14/service")

		keys, err := writer.Write(context.Background(), "events", &domain.Result{Updated: []string{}})

		require.NoError(t, err)
		assert.Equal(t, []string{"2023-09-14/service/events_updated.json"}, keys)
		assert.JSONEq(t, `[]`, client.objects["2023-09-14/service/events_updated.json"])
	})
}
