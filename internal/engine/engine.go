// Package engine 엔티티 타입별 파이프라인 실행과 결과 전송을 총괄하는 실행 엔진입니다.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pyoniverse/etl-transform/internal/domain"
	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// 실행 스테이지 값입니다. 테스트 스테이지는 모든 외부 전송을 생략합니다.
const (
	StageDev  = "dev"
	StageTest = "test"
	StageProd = "prod"
)

// Writer 최종 레코드를 오브젝트 스토어에 기록하고 기록한 키를 반환합니다.
type Writer interface {
	Write(ctx context.Context, relName string, result *domain.Result) ([]string, error)
}

// QueueNotifier 업데이트 의도와 운영 메시지를 큐로 전송합니다.
type QueueNotifier interface {
	NotifyUpdate(ctx context.Context, date, dbName, relName string, objectKeys []string) error
	NotifySuccess(ctx context.Context, ps map[string]any) error
	NotifyError(ctx context.Context, cause error, ps map[string]any) error
}

// BusNotifier 전체 실행 완료 이벤트를 발행합니다.
type BusNotifier interface {
	NotifyFinished(ctx context.Context, date string) error
}

// Engine 파이프라인들을 실행하고 결과를 외부로 내보냅니다.
//
// 엔티티 타입들은 소스와 출력이 겹치지 않으므로 동시에 실행됩니다. 어느 하나라도
// 실패하면 아무것도 전송하지 않고 실패를 보고합니다. 전송 단계는 at-least-once이며,
// 일부 기록 후의 재실행은 정제 로직의 수렴성이 안전을 보장합니다.
type Engine struct {
	processors []domain.Processor
	writer     Writer
	queue      QueueNotifier
	bus        BusNotifier
	serviceDB  string
	stage      string
}

// New 실행 엔진을 생성합니다. 스테이지 값이 올바르지 않으면 실패합니다.
func New(processors []domain.Processor, writer Writer, queue QueueNotifier, bus BusNotifier, serviceDB, stage string) (*Engine, error) {
	switch stage {
	case StageDev, StageTest, StageProd:
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "스테이지는 dev/test/prod 중 하나여야 합니다: '%s'", stage)
	}

	return &Engine{
		processors: processors,
		writer:     writer,
		queue:      queue,
		bus:        bus,
		serviceDB:  serviceDB,
		stage:      stage,
	}, nil
}

// Run 지정된 날짜로 전체 배치를 한 번 실행합니다.
func (e *Engine) Run(ctx context.Context, date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "실행 날짜 형식이 올바르지 않습니다: '%s' (예: 2023-09-14)", date)
	}

	runID := uuid.NewString()
	logger := applog.WithComponentAndFields("engine", log.Fields{"run_id": runID, "date": date})
	logger.Info("배치 실행을 시작합니다")

	results, err := e.runProcessors(ctx, date, logger)
	if err != nil {
		e.reportError(ctx, err, runID, date, logger)
		return err
	}

	if e.stage == StageTest {
		logger.Info("테스트 스테이지이므로 외부 전송을 생략합니다")
		return nil
	}

	counts := make(map[string]any, len(results))
	for relName, result := range results {
		keys, err := e.writer.Write(ctx, relName, result)
		if err != nil {
			e.reportError(ctx, err, runID, date, logger)
			return err
		}

		if err := e.queue.NotifyUpdate(ctx, date, e.serviceDB, relName, keys); err != nil {
			e.reportError(ctx, err, runID, date, logger)
			return err
		}

		counts[relName] = len(result.Data)
	}

	if err := e.bus.NotifyFinished(ctx, date); err != nil {
		e.reportError(ctx, err, runID, date, logger)
		return err
	}

	if err := e.queue.NotifySuccess(ctx, map[string]any{
		"run_id": runID,
		"date":   date,
		"counts": counts,
	}); err != nil {
		logger.Warnf("성공 보고 메시지 전송에 실패했습니다: %v", err)
	}

	logger.Info("배치 실행을 마쳤습니다")
	return nil
}

// runProcessors 모든 파이프라인을 동시에 실행하고 릴레이션 이름별 결과를 모읍니다.
// 하나라도 실패하면 첫 번째 실패를 반환합니다.
func (e *Engine) runProcessors(ctx context.Context, date string, logger *log.Entry) (map[string]*domain.Result, error) {
	var wg sync.WaitGroup
	results := make([]*domain.Result, len(e.processors))
	errs := make([]error, len(e.processors))

	for i, processor := range e.processors {
		wg.Add(1)
		go func(i int, processor domain.Processor) {
			defer wg.Done()
			results[i], errs[i] = processor.Run(ctx, date)
		}(i, processor)
	}
	wg.Wait()

	collected := make(map[string]*domain.Result, len(e.processors))
	for i, processor := range e.processors {
		if errs[i] != nil {
			logger.Errorf("'%s' 파이프라인 실행에 실패했습니다: %v", processor.Name(), errs[i])
			return nil, apperrors.Wrapf(errs[i], apperrors.ExecutionFailed, "'%s' 파이프라인 실행에 실패했습니다", processor.Name())
		}
		collected[processor.Name()] = results[i]
	}

	return collected, nil
}

// reportError 실행 실패를 운영 채널에 보고합니다. 테스트 스테이지에서는 생략하며,
// 보고 자체의 실패는 경고 로그만 남깁니다.
func (e *Engine) reportError(ctx context.Context, cause error, runID, date string, logger *log.Entry) {
	if e.stage == StageTest {
		return
	}
	if err := e.queue.NotifyError(ctx, cause, map[string]any{"run_id": runID, "date": date}); err != nil {
		logger.Warnf("실패 보고 메시지 전송에 실패했습니다: %v", err)
	}
}
