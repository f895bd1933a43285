// Package model 수집(Crawled) 데이터와 상용(Service) 데이터의 구조 및 스키마 검증을 정의합니다.
package model

// CrawledInfo 특정 브랜드 페이지를 한 번 수집한 결과의 식별 정보입니다.
// (spider, id) 쌍이 중복 제거의 기준 키이며, 동일한 키는 반드시 동일한 url을 가져야 합니다.
type CrawledInfo struct {
	Spider string `json:"spider" validate:"required"`
	ID     string `json:"id" validate:"required"`
	URL    string `json:"url" validate:"required"`
}

// Key (spider, id) 중복 제거 키를 반환합니다.
func (c CrawledInfo) Key() string {
	return c.Spider + "\x00" + c.ID
}

// Price 상품 가격 정보입니다. DiscountedValue는 할인 행사(이벤트 7)가 없으면 null입니다.
type Price struct {
	Value           float64  `json:"value"`
	Currency        int      `json:"currency"`
	DiscountedValue *float64 `json:"discounted_value"`
}

// ImageSize 이미지의 픽셀 크기입니다.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area 픽셀 면적을 반환합니다. 병합 시 대표 이미지 선택 기준으로 사용됩니다.
func (s ImageSize) Area() int {
	return s.Width * s.Height
}

// ImageSizeMap 수집된 이미지들의 크기 메타데이터입니다.
// 크기 정보는 수집 단계에서 함께 저장된 값이며, 정제 단계에서 외부 조회는 수행하지 않습니다.
type ImageSizeMap struct {
	Thumb  *ImageSize  `json:"thumb"`
	Others []ImageSize `json:"others"`
}

// Image 수집된 상품/이벤트 이미지 정보입니다.
type Image struct {
	Thumb  *string      `json:"thumb"`
	Others []string     `json:"others"`
	Size   ImageSizeMap `json:"size"`
}

// ProductEvent 수집된 레코드에 붙어있는 프로모션 행사 정보입니다.
type ProductEvent struct {
	Brand int `json:"brand" validate:"min=1"`
	ID    int `json:"id" validate:"min=1"`
}

// RawProductRecord 수집 저장소에서 읽어온 상품 한 건의 스냅샷입니다.
// 업스트림 수집기가 소유하는 저장소는 읽기 전용이며, 정제는 조회해 온 복사본 위에서만
// 이루어집니다.
type RawProductRecord struct {
	CrawledInfo CrawledInfo    `json:"crawled_info"`
	Name        string         `json:"name" validate:"required"`
	Description *string        `json:"description"`
	Events      []ProductEvent `json:"events" validate:"dive"`
	Image       Image          `json:"image"`
	Price       Price          `json:"price"`
	Category    *int           `json:"category" validate:"omitempty,min=1,max=12"`
	Tags        []string       `json:"tags"`
}

// RawEventRecord 수집 저장소에서 읽어온 브랜드 행사 한 건의 스냅샷입니다.
type RawEventRecord struct {
	CrawledInfo CrawledInfo `json:"crawled_info"`
	StartAt     int64       `json:"start_at" validate:"required"`
	EndAt       int64       `json:"end_at" validate:"required"`
	Name        string      `json:"name" validate:"required"`
	Image       Image       `json:"image"`
	Description *string     `json:"description"`
}
