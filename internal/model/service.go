package model

// 상용 레코드 상태 값입니다.
const (
	// StatusUnpublishable 카테고리가 없거나 살아있는 브랜드 행사가 하나도 없는 레코드
	StatusUnpublishable = -1

	// StatusPublishable 서비스에 노출 가능한 레코드
	StatusPublishable = 2
)

// DateLayout 히스토리 날짜 및 실행 날짜의 직렬화 형식입니다.
const DateLayout = "2006-01-02"

// BrandOffer 정규화된 상품 하나에 대한 특정 브랜드의 가격과 행사 목록입니다.
// 하나의 상용 레코드 안에서 브랜드 ID는 유일합니다.
type BrandOffer struct {
	ID     int   `json:"id" validate:"min=1"`
	Price  Price `json:"price"`
	Events []int `json:"events"`
}

// BestDeal 프로모션 행사 공식을 적용했을 때 가장 저렴한 실효 가격입니다.
type BestDeal struct {
	Brand  int     `json:"brand" validate:"min=1"`
	Price  float64 `json:"price"`
	Events []int   `json:"events"`
}

// HistorySnapshot 직전 실행 시점의 브랜드 가격 상태를 날짜별로 기록한 스냅샷입니다.
// 날짜는 하나의 레코드 안에서 유일하며, 같은 날짜로 다시 기록되면 마지막 기록이 남습니다.
type HistorySnapshot struct {
	Date   string       `json:"date" validate:"required,datetime=2006-01-02"`
	Brands []BrandOffer `json:"brands" validate:"dive"`
}

// Recommendation 추천 상품/행사 목록입니다.
// 추천 알고리즘은 이 배치의 범위가 아니므로 항상 빈 목록으로 채워집니다.
type Recommendation struct {
	Products []int `json:"products"`
	Events   []int `json:"events"`
}

// ServiceProductRecord 상용 데이터베이스로 내보내는 정규화된 상품 레코드입니다.
type ServiceProductRecord struct {
	Name           string            `json:"name" validate:"required"`
	Category       *int              `json:"category" validate:"omitempty,min=1,max=12"`
	Description    *string           `json:"description"`
	Brands         []BrandOffer      `json:"brands" validate:"min=1,dive"`
	Recommendation Recommendation    `json:"recommendation"`
	Image          string            `json:"image" validate:"required,url"`
	CrawledInfos   []CrawledInfo     `json:"crawled_infos" validate:"min=1,dive"`
	Price          float64           `json:"price" validate:"required"`
	Best           BestDeal          `json:"best"`
	Histories      []HistorySnapshot `json:"histories" validate:"dive"`
	Status         int               `json:"status" validate:"oneof=-1 2"`
}

// ServiceImage 상용 도메인으로 치환된 이벤트 이미지입니다.
type ServiceImage struct {
	Thumb  string   `json:"thumb" validate:"required,url"`
	Others []string `json:"others"`
}

// ServiceEventRecord 상용 데이터베이스로 내보내는 브랜드 행사 레코드입니다.
type ServiceEventRecord struct {
	Status       int           `json:"status" validate:"oneof=-1 2"`
	Name         string        `json:"name" validate:"required"`
	Brand        int           `json:"brand" validate:"min=1"`
	Image        ServiceImage  `json:"image"`
	Description  *string       `json:"description"`
	CrawledInfos []CrawledInfo `json:"crawled_infos" validate:"min=1,dive"`
	StartAt      int64         `json:"start_at" validate:"required"`
	EndAt        int64         `json:"end_at" validate:"required"`
}
