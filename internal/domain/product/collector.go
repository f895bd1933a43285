package product

import (
	log "github.com/sirupsen/logrus"

	"github.com/pyoniverse/etl-transform/internal/converter"
	"github.com/pyoniverse/etl-transform/internal/model"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// CollectBrandOffers 그룹에 모인 원시 레코드들을 브랜드 단위 가격 제안으로 정리합니다.
//
// 각 원시 레코드의 스파이더 이름에서 브랜드를 해석하며, 해석할 수 없는 스파이더는
// 건너뛰고 개수만 집계합니다. (치명적 오류가 아니라 로그 대상입니다)
//
// 같은 브랜드의 레코드가 여러 개면 가격 하위 필드를 필드 단위로 병합하되,
// 먼저 채워진 값이 항상 이깁니다. 이미 설정된 필드를 덮어쓰거나 평균을 내지 않으므로
// 같은 입력에 대해 실행 순서와 무관하게 같은 결과가 나옵니다.
//
// 반환되는 제안 목록은 브랜드가 처음 등장한 순서를 따르며, 브랜드 ID는 목록 안에서
// 유일합니다. 브랜드별 행사 목록은 그룹 전체 행사 중 해당 브랜드의 것만 모아
// 중복을 제거한 결과입니다.
func CollectBrandOffers(group *Group) (offers []model.BrandOffer, skipped int) {
	index := make(map[int]int, len(group.CrawledInfos)) // brandID -> offers 슬라이스 위치

	for i, crawledInfo := range group.CrawledInfos {
		brandID, err := converter.ResolveBrand(crawledInfo.Spider)
		if err != nil {
			applog.WithComponentAndFields("product.collector", log.Fields{
				"spider": crawledInfo.Spider,
				"name":   group.Name,
			}).Warn("브랜드를 해석할 수 없어 레코드를 건너뜁니다")
			skipped++
			continue
		}

		price := group.Prices[i]

		pos, exists := index[brandID]
		if !exists {
			index[brandID] = len(offers)
			offers = append(offers, model.BrandOffer{
				ID:     brandID,
				Price:  price,
				Events: brandEvents(group.Events, brandID),
			})
			continue
		}

		mergePriceFirstWins(&offers[pos].Price, price)
	}

	return offers, skipped
}

// brandEvents 그룹 전체 행사 목록에서 해당 브랜드의 행사 ID만 모읍니다.
// 처음 등장한 순서를 보존하며 중복은 제거합니다.
func brandEvents(events []model.ProductEvent, brandID int) []int {
	var ids []int
	seen := make(map[int]bool)
	for _, event := range events {
		if event.Brand != brandID || seen[event.ID] {
			continue
		}
		seen[event.ID] = true
		ids = append(ids, event.ID)
	}
	return ids
}

// mergePriceFirstWins 가격 하위 필드를 필드 단위로 병합합니다. 비어있는 필드만 새 값으로
// 채우고, 이미 설정된 필드는 절대 덮어쓰지 않습니다.
func mergePriceFirstWins(dst *model.Price, src model.Price) {
	if dst.Value == 0 {
		dst.Value = src.Value
	}
	if dst.Currency == 0 {
		dst.Currency = src.Currency
	}
	if dst.DiscountedValue == nil {
		dst.DiscountedValue = src.DiscountedValue
	}
}
