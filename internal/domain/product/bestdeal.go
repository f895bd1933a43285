package product

import (
	"math"

	"github.com/pyoniverse/etl-transform/internal/model"
)

// 프로모션 행사 ID 상수
const (
	EventBuyOneGetOne   = 1 // 1+1
	EventBuyTwoGetOne   = 2 // 2+1
	EventDiscount       = 7 // 할인
	EventBuyThreeGetOne = 8 // 3+1
)

// effectivePrice 행사 ID에 대응하는 실효 단가 공식을 적용합니다.
// 후보가 될 수 없는 행사(목록에 없는 ID, 할인가 없는 할인 행사)는 ok=false를 반환합니다.
func effectivePrice(eventID int, price model.Price) (value float64, ok bool) {
	switch eventID {
	case EventBuyOneGetOne:
		return price.Value / 2, true
	case EventBuyTwoGetOne:
		return price.Value * 2 / 3, true
	case EventDiscount:
		// 할인가가 없는 할인 행사는 최저가 후보에서만 제외됩니다.
		// 행사 목록 자체에는 그대로 남습니다.
		if price.DiscountedValue == nil {
			return 0, false
		}
		return *price.DiscountedValue, true
	case EventBuyThreeGetOne:
		return price.Value * 3 / 4, true
	default:
		return 0, false
	}
}

// ResolveBestDeal 브랜드 제안들에 행사 공식을 적용해 가장 저렴한 실효 가격을 찾습니다.
//
// 브랜드는 목록 순서대로, 브랜드 안의 행사도 목록 순서대로 평가하며 엄격한 최솟값을
// 추적합니다. 같은 가격이면 먼저 평가된 쪽이 이기므로 결과는 결정적입니다.
//
// 후보가 하나도 없으면 기본 가격과 함께 첫 번째 브랜드(삽입 순서 기준이며,
// 구조적으로 가장 저렴한 브랜드가 아님)로 대체합니다.
// 결과 가격은 소수점 둘째 자리까지 은행가 반올림(round-half-to-even)합니다.
func ResolveBestDeal(basePrice float64, offers []model.BrandOffer) model.BestDeal {
	var (
		bestPrice  float64
		bestBrand  int
		bestEvents []int
		found      bool
	)

	for _, offer := range offers {
		for _, eventID := range offer.Events {
			candidate, ok := effectivePrice(eventID, offer.Price)
			if !ok {
				continue
			}
			if !found || candidate < bestPrice {
				bestPrice = candidate
				bestBrand = offer.ID
				bestEvents = offer.Events
				found = true
			}
		}
	}

	if !found {
		bestPrice = basePrice
		if len(offers) > 0 {
			bestBrand = offers[0].ID
			bestEvents = offers[0].Events
		}
	}

	return model.BestDeal{
		Brand:  bestBrand,
		Price:  roundHalfEven(bestPrice, 2),
		Events: bestEvents,
	}
}

// roundHalfEven 값을 지정한 소수 자리수로 은행가 반올림합니다.
func roundHalfEven(value float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.RoundToEven(value*scale) / scale
}
