// Package scheduler 데몬 모드에서 배치를 정해진 주기로 반복 실행합니다.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pyoniverse/etl-transform/internal/model"
	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	"github.com/pyoniverse/etl-transform/pkg/cronx"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// Runner 스케줄러가 주기마다 실행하는 배치입니다.
type Runner interface {
	Run(ctx context.Context, date string) error
}

// Scheduler Cron 주기에 맞춰 Runner를 반복 실행하는 데몬입니다.
// 실행 날짜는 매 회차 시작 시점의 "오늘"입니다.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
}

// New 스케줄러를 생성합니다.
func New(runner Runner) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithParser(cronx.StandardParser())),
		runner: runner,
	}
}

// Start 주기 실행을 시작하고 컨텍스트가 취소될 때까지 대기합니다.
// 이미 실행 중인 회차는 중단하지 않고 끝까지 기다린 뒤 반환합니다.
func (s *Scheduler) Start(ctx context.Context, timeSpec string) error {
	logger := applog.WithComponent("scheduler")

	_, err := s.cron.AddFunc(timeSpec, func() {
		date := time.Now().Format(model.DateLayout)
		logger.Infof("주기 실행을 시작합니다 (date:%s)", date)

		if err := s.runner.Run(ctx, date); err != nil {
			logger.Errorf("주기 실행에 실패했습니다 (date:%s): %v", date, err)
			return
		}
		logger.Infof("주기 실행을 마쳤습니다 (date:%s)", date)
	})
	if err != nil {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "스케줄 등록에 실패했습니다: '%s'", timeSpec)
	}

	s.cron.Start()
	logger.Infof("스케줄러가 시작되었습니다 (spec:%s)", timeSpec)

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logger.Info("스케줄러가 종료되었습니다")

	return nil
}
