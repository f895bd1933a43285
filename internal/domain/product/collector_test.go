package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyoniverse/etl-transform/internal/converter"
	"github.com/pyoniverse/etl-transform/internal/model"
)

func TestCollectBrandOffers(t *testing.T) {
	t.Parallel()

	t.Run("브랜드별로 하나의 제안만 생성", func(t *testing.T) {
		t.Parallel()

		discounted := 1200.0
		group := &Group{
			Name: "커피우유(500.0ml)",
			CrawledInfos: []model.CrawledInfo{
				{Spider: "gs25_products", ID: "1", URL: "http://gs25.example.com/1"},
				{Spider: "gs25_products", ID: "2", URL: "http://gs25.example.com/2"},
				{Spider: "cu_products", ID: "3", URL: "http://cu.example.com/3"},
			},
			Prices: []model.Price{
				{Value: 1500, Currency: 1},
				{Value: 1600, Currency: 1, DiscountedValue: &discounted},
				{Value: 1450, Currency: 1},
			},
			Events: []model.ProductEvent{
				{Brand: converter.BrandGS25, ID: 1},
				{Brand: converter.BrandGS25, ID: 1}, // 중복 행사
				{Brand: converter.BrandCU, ID: 2},
			},
		}

		offers, skipped := CollectBrandOffers(group)

		require.Len(t, offers, 2)
		assert.Zero(t, skipped)

		// 등장 순서 보존
		assert.Equal(t, converter.BrandGS25, offers[0].ID)
		assert.Equal(t, converter.BrandCU, offers[1].ID)

		// 먼저 채워진 가격 필드가 이기고, 비어있던 할인가만 새로 채워짐
		assert.Equal(t, 1500.0, offers[0].Price.Value)
		require.NotNil(t, offers[0].Price.DiscountedValue)
		assert.Equal(t, 1200.0, *offers[0].Price.DiscountedValue)

		// 브랜드별 행사는 중복 제거
		assert.Equal(t, []int{1}, offers[0].Events)
		assert.Equal(t, []int{2}, offers[1].Events)
	})

	t.Run("해석 불가 스파이더는 건너뛰고 집계", func(t *testing.T) {
		t.Parallel()

		group := &Group{
			Name: "우유",
			CrawledInfos: []model.CrawledInfo{
				{Spider: "ministop_products", ID: "1", URL: "http://example.com/1"},
				{Spider: "cu_products", ID: "2", URL: "http://cu.example.com/2"},
			},
			Prices: []model.Price{
				{Value: 1000, Currency: 1},
				{Value: 1100, Currency: 1},
			},
		}

		offers, skipped := CollectBrandOffers(group)

		require.Len(t, offers, 1)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, converter.BrandCU, offers[0].ID)
	})

	t.Run("같은 브랜드 레코드가 아무리 많아도 제안은 하나", func(t *testing.T) {
		t.Parallel()

		group := &Group{Name: "우유"}
		for i := 0; i < 5; i++ {
			group.CrawledInfos = append(group.CrawledInfos, model.CrawledInfo{
				Spider: "emart24_products", ID: string(rune('1' + i)), URL: "http://emart24.example.com",
			})
			group.Prices = append(group.Prices, model.Price{Value: float64(1000 + i), Currency: 1})
		}

		offers, skipped := CollectBrandOffers(group)

		require.Len(t, offers, 1)
		assert.Zero(t, skipped)
		assert.Equal(t, 1000.0, offers[0].Price.Value)
	})
}
