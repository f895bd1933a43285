package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

func TestResolveBrand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spider   string
		expected int
		wantErr  bool
	}{
		{"GS25 스파이더", "gs25_products", BrandGS25, false},
		{"CU 스파이더", "cu_products", BrandCU, false},
		{"세븐일레븐 스파이더", "seveneleven_products", BrandSevenEleven, false},
		{"이마트24 스파이더", "emart24_events", BrandEmart24, false},
		{"씨스페이스 스파이더", "cspace_products", BrandCSpace, false},
		{"대소문자 혼용", "GS25_Products", BrandGS25, false},
		{"알 수 없는 스파이더", "ministop_products", 0, true},
		{"빈 스파이더", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, err := ResolveBrand(tt.spider)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.UnknownBrand))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestBrandName(t *testing.T) {
	t.Parallel()

	name, err := BrandName(BrandSevenEleven)
	require.NoError(t, err)
	assert.Equal(t, "SEVEN ELEVEN", name)

	_, err = BrandName(99)
	assert.Error(t, err)
}

func TestCategoryConversion(t *testing.T) {
	t.Parallel()

	t.Run("이름과 ID 왕복 변환", func(t *testing.T) {
		t.Parallel()

		for _, id := range CategoryIDs() {
			name, err := CategoryName(id)
			require.NoError(t, err)

			got, err := CategoryID(name)
			require.NoError(t, err)
			assert.Equal(t, id, got)
		}
	})

	t.Run("선언 순서 보장", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, CategoryIDs())
	})

	t.Run("정의되지 않은 항목", func(t *testing.T) {
		t.Parallel()

		_, err := CategoryID("Unknown")
		assert.True(t, apperrors.Is(err, apperrors.NotFound))

		_, err = CategoryName(0)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})
}
