package product

import (
	"github.com/pyoniverse/etl-transform/internal/model"
)

// Group 정규화된 이름 하나로 묶인 원시 레코드들의 작업용 집계입니다.
//
// 실행할 때마다 원시 배치에서 새로 만들어지며, 그대로 저장되지 않습니다.
// CrawledInfos와 Prices는 같은 원시 레코드에서 나온 항목끼리 인덱스가
// 정렬되어 있습니다. 브랜드별 가격 수집이 이 정렬에 의존합니다.
type Group struct {
	Name         string
	CrawledInfos []model.CrawledInfo
	Descriptions []string
	Events       []model.ProductEvent
	Images       []model.Image
	Prices       []model.Price
	Categories   []int
}

// GroupByName 원시 레코드들을 정규화된 이름 기준으로 묶습니다.
//
// 그룹 순서는 각 이름이 처음 등장한 순서를 그대로 따르며, 그룹 내부의 필드 목록도
// 입력 순서를 보존합니다. null인 설명/카테고리는 걸러내고, 행사 목록은 중복을
// 남겨둔 채 이어 붙입니다. (행사 중복 제거는 이후 브랜드별 수집 단계의 몫입니다)
func GroupByName(records []model.RawProductRecord) []*Group {
	groups := make([]*Group, 0, len(records))
	index := make(map[string]*Group, len(records))

	for _, record := range records {
		name := NormalizeName(record.Name)

		group, exists := index[name]
		if !exists {
			group = &Group{Name: name}
			index[name] = group
			groups = append(groups, group)
		}

		group.CrawledInfos = append(group.CrawledInfos, record.CrawledInfo)
		group.Events = append(group.Events, record.Events...)
		group.Images = append(group.Images, record.Image)
		group.Prices = append(group.Prices, record.Price)

		if record.Description != nil {
			group.Descriptions = append(group.Descriptions, *record.Description)
		}
		if record.Category != nil {
			group.Categories = append(group.Categories, *record.Category)
		}
	}

	return groups
}

// reduceCategory 그룹에 모인 카테고리들 중 다수결로 대표 카테고리를 고릅니다.
// 득표 수가 같으면 먼저 등장한 카테고리가 이기고, 카테고리가 하나도 없으면 ok=false입니다.
func reduceCategory(categories []int) (categoryID int, ok bool) {
	if len(categories) == 0 {
		return 0, false
	}

	votes := make(map[int]int, len(categories))
	for _, category := range categories {
		votes[category]++
	}

	// 동점이면 먼저 등장한 카테고리를 선택합니다.
	best, bestVotes := 0, 0
	for _, category := range categories {
		if votes[category] > bestVotes {
			best, bestVotes = category, votes[category]
		}
	}

	return best, true
}

// reduceDescription 그룹의 설명 목록에서 첫 번째 값을 대표로 고릅니다.
func reduceDescription(descriptions []string) *string {
	if len(descriptions) == 0 {
		return nil
	}
	first := descriptions[0]
	return &first
}
