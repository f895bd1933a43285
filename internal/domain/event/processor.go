// Package event 수집된 브랜드 행사 레코드를 상용 형태로 정제하는 파이프라인입니다.
//
// 상품 파이프라인과 구조는 같지만 병합/이력이 없어 훨씬 단순합니다. 행사는 매 실행
// 전체가 교체되므로 직전 스냅샷과의 비교 없이 모든 산출 레코드가 변경 목록에 오릅니다.
package event

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pyoniverse/etl-transform/internal/converter"
	"github.com/pyoniverse/etl-transform/internal/domain"
	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	"github.com/pyoniverse/etl-transform/internal/repository"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
	"github.com/pyoniverse/etl-transform/pkg/maputil"
	"github.com/pyoniverse/etl-transform/pkg/strutil"
)

const relationName = "events"

// Processor 브랜드 행사 엔티티 타입의 정제 파이프라인입니다.
type Processor struct {
	repo        repository.Repository
	imageDomain string
	logger      *log.Entry
}

var _ domain.Processor = (*Processor)(nil)

// NewProcessor 행사 파이프라인을 생성합니다.
func NewProcessor(repo repository.Repository, imageDomain string) *Processor {
	return &Processor{
		repo:        repo,
		imageDomain: strings.TrimSuffix(imageDomain, "/"),
		logger:      applog.WithComponent("domain.event"),
	}
}

// Name 릴레이션 이름을 반환합니다.
func (p *Processor) Name() string {
	return relationName
}

// Run 파이프라인 전체를 실행합니다.
func (p *Processor) Run(ctx context.Context, date string) (*domain.Result, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "실행 날짜 형식이 올바르지 않습니다: '%s' (예: 2023-09-14)", date)
	}

	records, err := p.preprocess(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Infof("전처리 완료: %s건", strutil.FormatCommas(len(records)))

	converted := p.process(records)
	p.logger.Infof("처리 완료: %s건", strutil.FormatCommas(len(converted)))

	return p.postprocess(converted)
}

// preprocess 수집 저장소에서 현재 배치 전체를 읽고 스키마를 검증합니다.
func (p *Processor) preprocess(ctx context.Context) ([]model.RawEventRecord, error) {
	docs, err := p.repo.Find(ctx, p.Name(), repository.FindOptions{
		Projection: map[string]any{"_id": false, "created_at": false, "updated_at": false},
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.RawEventRecord, 0, len(docs))
	for i, doc := range docs {
		record, err := maputil.Decode[model.RawEventRecord](doc)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "수집 행사 문서(%d번째) 디코딩에 실패했습니다", i)
		}
		records = append(records, *record)
	}

	validation := model.ValidateRecords(records)
	if !validation.OK() {
		return nil, validation.Err("수집 행사")
	}

	return records, nil
}

// process 이름 소문자화, 이미지 도메인 치환, 브랜드 해석을 수행합니다.
// 썸네일이 없는 행사와 브랜드를 해석할 수 없는 행사는 건너뜁니다.
func (p *Processor) process(records []model.RawEventRecord) []model.ServiceEventRecord {
	converted := make([]model.ServiceEventRecord, 0, len(records))

	for _, record := range records {
		if record.Image.Thumb == nil {
			p.logger.Debugf("'%s' 행사는 썸네일이 없어 제외합니다", record.Name)
			continue
		}

		brandID, err := converter.ResolveBrand(record.CrawledInfo.Spider)
		if err != nil {
			p.logger.Warnf("'%s' 행사의 스파이더 '%s'에서 브랜드를 해석할 수 없어 제외합니다", record.Name, record.CrawledInfo.Spider)
			continue
		}

		image, err := p.rewriteImage(record.Image)
		if err != nil {
			p.logger.Warnf("'%s' 행사의 이미지 URL을 치환할 수 없어 제외합니다: %v", record.Name, err)
			continue
		}

		converted = append(converted, model.ServiceEventRecord{
			Status:       model.StatusPublishable,
			Name:         strings.ToLower(record.Name),
			Brand:        brandID,
			Image:        image,
			Description:  record.Description,
			CrawledInfos: []model.CrawledInfo{record.CrawledInfo},
			StartAt:      record.StartAt,
			EndAt:        record.EndAt,
		})
	}

	return converted
}

// rewriteImage 썸네일과 부속 이미지 전체를 상용 도메인으로 치환합니다.
func (p *Processor) rewriteImage(image model.Image) (model.ServiceImage, error) {
	thumb, err := domain.RewriteImageURL(p.imageDomain, *image.Thumb)
	if err != nil {
		return model.ServiceImage{}, err
	}

	others := make([]string, 0, len(image.Others))
	for _, other := range image.Others {
		rewritten, err := domain.RewriteImageURL(p.imageDomain, other)
		if err != nil {
			return model.ServiceImage{}, err
		}
		others = append(others, rewritten)
	}

	return model.ServiceImage{Thumb: thumb, Others: others}, nil
}

// postprocess 최종 스키마를 검증하고 결과로 투영합니다.
func (p *Processor) postprocess(records []model.ServiceEventRecord) (*domain.Result, error) {
	validation := model.ValidateRecords(records)
	if !validation.OK() {
		return nil, validation.Err("상용 행사")
	}

	data := make([]any, 0, len(records))
	updated := make([]string, 0, len(records))
	for _, record := range records {
		data = append(data, record)
		updated = append(updated, record.Name)
	}

	return &domain.Result{Data: data, Updated: updated}, nil
}
