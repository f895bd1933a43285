// Package product 수집된 상품 레코드를 정규화된 상용 카탈로그로 정제하는 파이프라인입니다.
//
// 이름 정규화 -> 카테고리 추론 -> 이름 기준 병합 -> 브랜드별 가격 수집 ->
// 최저가 계산 -> 이력 병합의 순서로 진행되며, 같은 날짜로 재실행해도 결과가
// 수렴합니다. (이력의 날짜 중복 제거와 가격 병합의 결정적 규칙이 보장합니다)
package product

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pyoniverse/etl-transform/internal/domain"
	"github.com/pyoniverse/etl-transform/internal/downloader"
	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	"github.com/pyoniverse/etl-transform/internal/repository"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
	"github.com/pyoniverse/etl-transform/pkg/maputil"
	"github.com/pyoniverse/etl-transform/pkg/strutil"
)

const relationName = "products"

// Processor 상품 엔티티 타입의 정제 파이프라인입니다.
type Processor struct {
	repo        repository.Repository
	downloader  downloader.Downloader
	serviceDB   string
	imageDomain string
	logger      *log.Entry
}

var _ domain.Processor = (*Processor)(nil)

// NewProcessor 상품 파이프라인을 생성합니다.
// serviceDB는 직전 스냅샷이 백업된 DB 이름, imageDomain은 상용 이미지 도메인입니다.
func NewProcessor(repo repository.Repository, dl downloader.Downloader, serviceDB, imageDomain string) *Processor {
	return &Processor{
		repo:        repo,
		downloader:  dl,
		serviceDB:   serviceDB,
		imageDomain: strings.TrimSuffix(imageDomain, "/"),
		logger:      applog.WithComponent("domain.product"),
	}
}

// Name 릴레이션 이름을 반환합니다.
func (p *Processor) Name() string {
	return relationName
}

// Run 파이프라인 전체를 실행합니다. 어느 단계의 실패든 부분 출력 없이 중단됩니다.
func (p *Processor) Run(ctx context.Context, date string) (*domain.Result, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "실행 날짜 형식이 올바르지 않습니다: '%s' (예: 2023-09-14)", date)
	}

	records, err := p.preprocess(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Infof("전처리 완료: %s건", strutil.FormatCommas(len(records)))

	candidates, err := p.process(ctx, records, date)
	if err != nil {
		return nil, err
	}
	p.logger.Infof("처리 완료: %s건", strutil.FormatCommas(len(candidates)))

	result, err := p.postprocess(candidates)
	if err != nil {
		return nil, err
	}
	p.logger.Infof("후처리 완료: %s건 (변경 %s건)", strutil.FormatCommas(len(result.Data)), strutil.FormatCommas(len(result.Updated)))

	return result, nil
}

// preprocess 수집 저장소에서 현재 배치 전체를 읽고 스키마를 검증합니다.
// 검증 실패는 이 엔티티 타입의 실행 전체를 중단시킵니다.
func (p *Processor) preprocess(ctx context.Context) ([]model.RawProductRecord, error) {
	docs, err := p.repo.Find(ctx, p.Name(), repository.FindOptions{
		Projection: map[string]any{"_id": false, "created_at": false, "updated_at": false},
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.RawProductRecord, 0, len(docs))
	for i, doc := range docs {
		record, err := maputil.Decode[model.RawProductRecord](doc)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "수집 상품 문서(%d번째) 디코딩에 실패했습니다", i)
		}
		records = append(records, *record)
	}

	validation := model.ValidateRecords(records)
	if !validation.OK() {
		p.logValidationFailures("수집 상품", validation)
		return nil, validation.Err("수집 상품")
	}

	return records, nil
}

// candidate 후처리 직전까지 만들어진 상용 레코드와, 직전 스냅샷 대비 변경 여부입니다.
type candidate struct {
	record  model.ServiceProductRecord
	changed bool
}

// process 필터 -> 카테고리 -> 병합 -> 병합 후 정제 -> 이력 병합을 수행합니다.
func (p *Processor) process(ctx context.Context, records []model.RawProductRecord, date string) ([]candidate, error) {
	p.logger.Info("처리: 할인가 없는 할인 행사 제거")
	p.filterEvents(records)

	p.logger.Info("처리: 카테고리 추론")
	p.fillCategories(records)

	p.logger.Info("처리: 이름 기준 병합")
	groups := GroupByName(records)

	p.logger.Info("처리: 병합 후 정제")
	candidates := p.convertGroups(groups)

	p.logger.Info("처리: 이력 병합")
	return p.appendHistories(ctx, candidates, date)
}

// filterEvents 할인가가 없는 레코드에서 할인 행사(이벤트 7)를 제거합니다.
// 할인가 없이는 실효 가격을 계산할 수 없으므로 행사 자체를 믿을 수 없는 데이터로 봅니다.
func (p *Processor) filterEvents(records []model.RawProductRecord) {
	for i := range records {
		record := &records[i]
		if record.Price.DiscountedValue != nil {
			continue
		}

		events := record.Events[:0]
		for _, event := range record.Events {
			if event.ID == EventDiscount {
				continue
			}
			events = append(events, event)
		}
		record.Events = events
	}
}

// fillCategories 태그/이름/기존 카테고리 힌트로 각 레코드의 카테고리를 다시 추론합니다.
// 추론이 불가능하면 카테고리는 null로 남습니다. (오류가 아닌 유효한 결과입니다)
func (p *Processor) fillCategories(records []model.RawProductRecord) {
	for i := range records {
		record := &records[i]

		var hints []int
		if record.Category != nil {
			hints = append(hints, *record.Category)
		}

		if categoryID, ok := Classify(record.Tags, record.Name, hints); ok {
			record.Category = &categoryID
		} else {
			record.Category = nil
		}
	}
}

// convertGroups 병합된 그룹들을 상용 레코드 형태로 변환합니다.
// 브랜드를 하나도 해석할 수 없는 그룹은 건너뜁니다.
func (p *Processor) convertGroups(groups []*Group) []candidate {
	candidates := make([]candidate, 0, len(groups))

	for _, group := range groups {
		offers, skipped := CollectBrandOffers(group)
		if skipped > 0 {
			p.logger.Warnf("'%s' 그룹에서 브랜드 해석 불가 레코드 %d건을 건너뛰었습니다", group.Name, skipped)
		}
		if len(offers) == 0 {
			p.logger.Warnf("'%s' 그룹은 해석 가능한 브랜드가 없어 제외합니다", group.Name)
			continue
		}

		// 기본 가격 = 브랜드 가격 중 최댓값
		basePrice := offers[0].Price.Value
		for _, offer := range offers[1:] {
			if offer.Price.Value > basePrice {
				basePrice = offer.Price.Value
			}
		}

		record := model.ServiceProductRecord{
			Name:           group.Name,
			Description:    reduceDescription(group.Descriptions),
			Brands:         offers,
			Recommendation: model.Recommendation{Products: []int{}, Events: []int{}},
			Image:          p.selectImage(group.Images),
			CrawledInfos:   group.CrawledInfos,
			Price:          basePrice,
			Best:           ResolveBestDeal(basePrice, offers),
		}
		if categoryID, ok := reduceCategory(group.Categories); ok {
			record.Category = &categoryID
		}

		candidates = append(candidates, candidate{record: record})
	}

	return candidates
}

// selectImage 그룹에 모인 이미지들 중 픽셀 면적이 가장 큰 것을 골라
// 상용 이미지 도메인으로 치환합니다. 고를 수 있는 이미지가 없으면 빈 문자열을
// 반환하며, 해당 레코드는 후처리에서 제외됩니다.
func (p *Processor) selectImage(images []model.Image) string {
	type sized struct {
		url  string
		area int
	}

	var (
		candidates []sized
		fallback   string
	)

	for _, image := range images {
		if image.Thumb != nil {
			if fallback == "" {
				fallback = *image.Thumb
			}
			if image.Size.Thumb != nil {
				candidates = append(candidates, sized{url: *image.Thumb, area: image.Size.Thumb.Area()})
			}
		}
		for i, other := range image.Others {
			if fallback == "" {
				fallback = other
			}
			if i < len(image.Size.Others) {
				candidates = append(candidates, sized{url: other, area: image.Size.Others[i].Area()})
			}
		}
	}

	best := fallback
	bestArea := -1
	for _, c := range candidates {
		if c.area > bestArea {
			best, bestArea = c.url, c.area
		}
	}

	if best == "" {
		return ""
	}
	return p.rewriteImageURL(best)
}

// rewriteImageURL 수집 이미지 URL을 상용 이미지 도메인으로 치환합니다.
func (p *Processor) rewriteImageURL(raw string) string {
	rewritten, err := domain.RewriteImageURL(p.imageDomain, raw)
	if err != nil {
		p.logger.Warnf("이미지 URL을 해석할 수 없습니다: '%s'", raw)
		return ""
	}
	return rewritten
}

// appendHistories 직전 실행 스냅샷을 내려받아 각 레코드의 수집 정보와 이력을 병합하고,
// 직전 스냅샷 대비 변경 여부를 표시합니다.
func (p *Processor) appendHistories(ctx context.Context, candidates []candidate, date string) ([]candidate, error) {
	previous, err := p.downloadPrevious(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(previous) == 0 {
		p.logger.Info("직전 실행 스냅샷이 없습니다. 모든 레코드를 신규로 처리합니다")
	}

	for i := range candidates {
		record := &candidates[i].record

		prev := previous[record.Name]
		crawledInfos, histories, err := ReconcileHistory(record.CrawledInfos, prev, date)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.IdentityCorruption, "'%s' 레코드의 이력 병합에 실패했습니다", record.Name)
		}

		record.CrawledInfos = crawledInfos
		record.Histories = histories
		candidates[i].changed = prev == nil || !reflect.DeepEqual(prev.Brands, record.Brands)
	}

	return candidates, nil
}

// downloadPrevious 직전 실행의 상용 레코드를 내려받아 정규화된 이름으로 색인합니다.
// 스냅샷이 없으면 빈 맵을 반환합니다. (오류 아님)
func (p *Processor) downloadPrevious(ctx context.Context, date string) (map[string]*model.ServiceProductRecord, error) {
	docs, err := p.downloader.Download(ctx, p.serviceDB, p.Name(), date)
	if err != nil {
		return nil, err
	}

	previous := make(map[string]*model.ServiceProductRecord, len(docs))
	for i, doc := range docs {
		record, err := maputil.Decode[model.ServiceProductRecord](doc)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "직전 스냅샷 문서(%d번째) 디코딩에 실패했습니다", i)
		}

		// 과거에 저장된 이름에도 약어 치환을 적용해 현재 정규화 규칙과 맞춥니다.
		name := strings.ReplaceAll(record.Name, "dm)", "덴마크)")
		if _, exists := previous[name]; exists {
			p.logger.Warnf("직전 스냅샷에 '%s' 이름이 중복되어 마지막 레코드를 사용합니다", name)
		}
		previous[name] = record
	}

	return previous, nil
}

// postprocess 이미지 없는 레코드를 제외하고 상태를 결정한 뒤 최종 스키마를 검증합니다.
// 상태는 카테고리가 있고 살아있는 브랜드 행사가 하나라도 있어야 노출 가능(2)입니다.
func (p *Processor) postprocess(candidates []candidate) (*domain.Result, error) {
	records := make([]model.ServiceProductRecord, 0, len(candidates))
	updated := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if c.record.Image == "" {
			p.logger.Debugf("'%s' 레코드는 이미지가 없어 제외합니다", c.record.Name)
			continue
		}

		c.record.Status = deriveStatus(&c.record)

		records = append(records, c.record)
		if c.changed {
			updated = append(updated, c.record.Name)
		}
	}

	validation := model.ValidateRecords(records)
	if !validation.OK() {
		p.logValidationFailures("상용 상품", validation)
		return nil, validation.Err("상용 상품")
	}

	data := make([]any, 0, len(records))
	for _, record := range records {
		data = append(data, record)
	}

	return &domain.Result{Data: data, Updated: updated}, nil
}

// deriveStatus 카테고리가 null이거나 모든 브랜드의 행사 목록이 비어있으면
// 노출 불가(-1), 둘 다 충족하면 노출 가능(2)입니다.
func deriveStatus(record *model.ServiceProductRecord) int {
	if record.Category == nil {
		return model.StatusUnpublishable
	}
	for _, brand := range record.Brands {
		if len(brand.Events) > 0 {
			return model.StatusPublishable
		}
	}
	return model.StatusUnpublishable
}

func (p *Processor) logValidationFailures(kind string, validation *model.ValidationResult) {
	for _, failure := range validation.Failures {
		fields := make([]string, 0, len(failure.Fields))
		for _, field := range failure.Fields {
			fields = append(fields, fmt.Sprintf("%s(%s)", field.Field, field.Constraint))
		}
		p.logger.Errorf("%s 스키마 검증 실패 (%d번째 레코드): %s", kind, failure.Index, strings.Join(fields, ", "))
	}
}
