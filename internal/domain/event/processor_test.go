package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyoniverse/etl-transform/internal/converter"
	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	"github.com/pyoniverse/etl-transform/internal/repository"
)

type fakeRepo struct {
	docs []map[string]any
}

func (f *fakeRepo) Find(_ context.Context, _ string, _ repository.FindOptions) ([]map[string]any, error) {
	return f.docs, nil
}

func (f *fakeRepo) Close(_ context.Context) error { return nil }

func eventDoc(spider, name string, thumb any) map[string]any {
	return map[string]any{
		"crawled_info": map[string]any{
			"spider": spider,
			"id":     "1",
			"url":    "http://" + spider + ".example.com/event/1",
		},
		"name":        name,
		"description": "행사 설명",
		"image": map[string]any{
			"thumb":  thumb,
			"others": []any{"http://cdn.example.com/img/events/1-1.png"},
			"size":   map[string]any{},
		},
		"start_at": 1694649600,
		"end_at":   1697241600,
	}
}

func TestProcessorRun(t *testing.T) {
	t.Parallel()

	t.Run("행사 레코드를 상용 형태로 변환", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{docs: []map[string]any{
			eventDoc("gs25_events", "9월 행사", "http://cdn.example.com/img/events/1.png"),
		}}
		processor := NewProcessor(repo, "https://image.example.com")

		result, err := processor.Run(context.Background(), "2023-09-14")

		require.NoError(t, err)
		require.Len(t, result.Data, 1)

		record, ok := result.Data[0].(model.ServiceEventRecord)
		require.True(t, ok)

		assert.Equal(t, model.StatusPublishable, record.Status)
		assert.Equal(t, "9월 행사", record.Name)
		assert.Equal(t, converter.BrandGS25, record.Brand)
		assert.Equal(t, "https://image.example.com/events/1.png", record.Image.Thumb)
		assert.Equal(t, []string{"https://image.example.com/events/1-1.png"}, record.Image.Others)
		require.Len(t, record.CrawledInfos, 1)
		assert.Equal(t, "gs25_events", record.CrawledInfos[0].Spider)

		assert.Equal(t, []string{"9월 행사"}, result.Updated)
	})

	t.Run("이름은 소문자로 정규화", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{docs: []map[string]any{
			eventDoc("cu_events", "SEPTEMBER Event", "http://cdn.example.com/img/events/2.png"),
		}}
		processor := NewProcessor(repo, "https://image.example.com")

		result, err := processor.Run(context.Background(), "2023-09-14")

		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "september event", result.Data[0].(model.ServiceEventRecord).Name)
	})

	t.Run("썸네일 없는 행사는 제외", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{docs: []map[string]any{
			eventDoc("gs25_events", "행사", nil),
		}}
		processor := NewProcessor(repo, "https://image.example.com")

		result, err := processor.Run(context.Background(), "2023-09-14")

		require.NoError(t, err)
		assert.Empty(t, result.Data)
	})

	t.Run("브랜드 해석 불가 행사는 제외", func(t *testing.T) {
		t.Parallel()

		repo := &fakeRepo{docs: []map[string]any{
			eventDoc("ministop_events", "행사", "http://cdn.example.com/img/events/3.png"),
		}}
		processor := NewProcessor(repo, "https://image.example.com")

		result, err := processor.Run(context.Background(), "2023-09-14")

		require.NoError(t, err)
		assert.Empty(t, result.Data)
	})

	t.Run("입력 스키마 검증 실패는 실행 전체를 중단", func(t *testing.T) {
		t.Parallel()

		doc := eventDoc("gs25_events", "행사", "http://cdn.example.com/img/events/4.png")
		doc["start_at"] = 0
		processor := NewProcessor(&fakeRepo{docs: []map[string]any{doc}}, "https://image.example.com")

		_, err := processor.Run(context.Background(), "2023-09-14")

		require.Error(t, err)
		assert.Equal(t, apperrors.SchemaValidation, apperrors.UnderlyingType(err))
	})
}
