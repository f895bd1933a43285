package product

import (
	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// ReconcileHistory 현재 배치의 수집 정보와 직전 실행의 상용 레코드를 하나의 이력으로 접습니다.
//
// 직전 레코드가 없으면(다운로더가 빈 결과를 반환하는 경우이며 오류가 아닙니다)
// 현재 수집 정보만 (spider, id) 기준으로 중복 제거하고 이력은 비웁니다.
//
// 직전 레코드가 있으면:
//  1. 현재와 직전의 수집 정보를 합치고 (spider, id)로 중복 제거합니다. 같은 키인데
//     url이 다르면 조용히 고치지 않고 IdentityCorruption으로 실패합니다.
//  2. 직전 브랜드 상태를 {date: asOfDate} 스냅샷으로 직전 이력 뒤에 붙입니다.
//  3. 날짜 기준으로 중복을 제거하되 같은 날짜는 마지막 기록이 남습니다.
//     같은 날짜로 재실행해도 이력 길이는 늘어나지 않습니다.
func ReconcileHistory(current []model.CrawledInfo, previous *model.ServiceProductRecord, asOfDate string) ([]model.CrawledInfo, []model.HistorySnapshot, error) {
	if previous == nil {
		crawledInfos, err := dedupCrawledInfos(current)
		if err != nil {
			return nil, nil, err
		}
		return crawledInfos, []model.HistorySnapshot{}, nil
	}

	merged := make([]model.CrawledInfo, 0, len(current)+len(previous.CrawledInfos))
	merged = append(merged, current...)
	merged = append(merged, previous.CrawledInfos...)

	crawledInfos, err := dedupCrawledInfos(merged)
	if err != nil {
		return nil, nil, err
	}

	histories := append(previous.Histories, model.HistorySnapshot{
		Date:   asOfDate,
		Brands: previous.Brands,
	})

	return crawledInfos, dedupHistories(histories), nil
}

// dedupCrawledInfos (spider, id) 기준으로 중복을 제거합니다. 처음 등장한 항목이 남으며,
// 같은 키에서 url이 갈리면 식별자 오염으로 간주해 실패합니다.
func dedupCrawledInfos(crawledInfos []model.CrawledInfo) ([]model.CrawledInfo, error) {
	deduped := make([]model.CrawledInfo, 0, len(crawledInfos))
	seen := make(map[string]string, len(crawledInfos))

	for _, info := range crawledInfos {
		key := info.Key()

		url, exists := seen[key]
		if !exists {
			seen[key] = info.URL
			deduped = append(deduped, info)
			continue
		}

		if url != info.URL {
			return nil, apperrors.Newf(apperrors.IdentityCorruption,
				"동일한 수집 키가 서로 다른 url을 가집니다 (spider:%s, id:%s, url:%s != %s)",
				info.Spider, info.ID, url, info.URL)
		}
	}

	return deduped, nil
}

// dedupHistories 날짜 기준으로 이력 중복을 제거합니다. 같은 날짜는 마지막 기록이 이깁니다.
func dedupHistories(histories []model.HistorySnapshot) []model.HistorySnapshot {
	latest := make(map[string]model.HistorySnapshot, len(histories))
	order := make([]string, 0, len(histories))

	for _, snapshot := range histories {
		if _, exists := latest[snapshot.Date]; !exists {
			order = append(order, snapshot.Date)
		}
		latest[snapshot.Date] = snapshot
	}

	deduped := make([]model.HistorySnapshot, 0, len(order))
	for _, date := range order {
		deduped = append(deduped, latest[date])
	}

	return deduped
}
