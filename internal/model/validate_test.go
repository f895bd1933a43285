package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

func validRawProduct() RawProductRecord {
	return RawProductRecord{
		CrawledInfo: CrawledInfo{
			Spider: "gs25_products",
			ID:     "8801234567890",
			URL:    "http://gs25.example.com/item/1",
		},
		Name:  "서울 흰우유 500ml",
		Price: Price{Value: 1500, Currency: 1},
		Tags:  []string{"가공유"},
	}
}

func TestValidateRecords(t *testing.T) {
	t.Parallel()

	t.Run("정상 레코드 통과", func(t *testing.T) {
		t.Parallel()

		result := ValidateRecords([]RawProductRecord{validRawProduct()})

		assert.True(t, result.OK())
		assert.NoError(t, result.Err("crawled products"))
		assert.Equal(t, 1, result.Total)
	})

	t.Run("모든 실패를 끝까지 수집", func(t *testing.T) {
		t.Parallel()

		broken1 := validRawProduct()
		broken1.Name = ""

		broken2 := validRawProduct()
		broken2.CrawledInfo.Spider = ""
		broken2.CrawledInfo.URL = ""

		result := ValidateRecords([]RawProductRecord{broken1, validRawProduct(), broken2})

		require.Len(t, result.Failures, 2)
		assert.Equal(t, 0, result.Failures[0].Index)
		assert.Equal(t, 2, result.Failures[1].Index)
		assert.Len(t, result.Failures[1].Fields, 2)

		err := result.Err("crawled products")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.SchemaValidation))
	})

	t.Run("실패 필드 경로는 snake_case", func(t *testing.T) {
		t.Parallel()

		broken := validRawProduct()
		broken.CrawledInfo.Spider = ""

		result := ValidateRecords([]RawProductRecord{broken})

		require.Len(t, result.Failures, 1)
		require.Len(t, result.Failures[0].Fields, 1)
		assert.Equal(t, "crawled_info.spider", result.Failures[0].Fields[0].Field)
		assert.Equal(t, "required", result.Failures[0].Fields[0].Constraint)
	})

	t.Run("카테고리 범위 검사", func(t *testing.T) {
		t.Parallel()

		outOfRange := 13
		broken := validRawProduct()
		broken.Category = &outOfRange

		result := ValidateRecords([]RawProductRecord{broken})
		assert.False(t, result.OK())
	})
}

func TestValidateServiceProductRecord(t *testing.T) {
	t.Parallel()

	category := 1
	record := ServiceProductRecord{
		Name:     "서울 흰우유(500.0ml)",
		Category: &category,
		Brands: []BrandOffer{
			{ID: 1, Price: Price{Value: 1500, Currency: 1}, Events: []int{1}},
		},
		Image: "https://image.example.com/products/1.png",
		CrawledInfos: []CrawledInfo{
			{Spider: "gs25_products", ID: "1", URL: "http://gs25.example.com/item/1"},
		},
		Price:  1500,
		Best:   BestDeal{Brand: 1, Price: 750, Events: []int{1}},
		Status: StatusPublishable,
	}

	result := ValidateRecords([]ServiceProductRecord{record})
	assert.True(t, result.OK())

	t.Run("히스토리 날짜 형식 검사", func(t *testing.T) {
		t.Parallel()

		broken := record
		broken.Histories = []HistorySnapshot{{Date: "2023/10/23"}}

		assert.False(t, ValidateRecords([]ServiceProductRecord{broken}).OK())
	})

	t.Run("허용되지 않는 상태 값 거부", func(t *testing.T) {
		t.Parallel()

		broken := record
		broken.Status = 1

		assert.False(t, ValidateRecords([]ServiceProductRecord{broken}).OK())
	})
}
