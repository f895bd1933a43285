package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/pyoniverse/etl-transform/internal/config"
	"github.com/pyoniverse/etl-transform/internal/domain"
	"github.com/pyoniverse/etl-transform/internal/domain/event"
	"github.com/pyoniverse/etl-transform/internal/domain/product"
	"github.com/pyoniverse/etl-transform/internal/downloader"
	"github.com/pyoniverse/etl-transform/internal/engine"
	"github.com/pyoniverse/etl-transform/internal/model"
	"github.com/pyoniverse/etl-transform/internal/out"
	"github.com/pyoniverse/etl-transform/internal/repository"
	"github.com/pyoniverse/etl-transform/internal/scheduler"
	applog "github.com/pyoniverse/etl-transform/pkg/log"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version   = "dev"     // Git 커밋 해시
	BuildDate = "unknown" // 빌드 날짜
)

const (
	banner = `
  _____  _____  _       _____                          __
 | ____||_   _|| |     |_   _|_ __  __ _  _ __   ___  / _|  ___   _ __  _ __ ___
 |  _|    | |  | |       | | | '__|/ _` + "`" + ` || '_ \ / __|| |_  / _ \ | '__|| '_ ` + "`" + ` _ \
 | |___   | |  | |___    | | | |  | (_| || | | |\__ \|  _|| (_) || |   | | | | | |
 |_____|  |_|  |_____|   |_| |_|   \__,_||_| |_||___/|_|   \___/ |_|   |_| |_| |_|
                                                                  %s
----------------------------------------------------------------------------------
`
)

func main() {
	// .env 파일은 있으면 읽고 없으면 무시한다.
	_ = godotenv.Load()

	configPath := flag.String("config", config.DefaultFilename, "설정 파일 경로")
	stage := flag.String("stage", "", "실행 스테이지 (dev/test/prod, 설정 파일 값을 덮어씀)")
	date := flag.String("date", time.Now().Format(model.DateLayout), "실행 날짜 (YYYY-MM-DD)")
	daemon := flag.Bool("daemon", false, "스케줄러 데몬 모드로 실행")
	flag.Parse()

	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(*configPath)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}
	if *stage != "" {
		appConfig.Stage = *stage
	}

	// 2. 로그 시스템 초기화
	logCloser := applog.Init(appConfig.Debug, config.AppName, appConfig.Log.RetentionDays)
	defer logCloser.Close()
	applog.SetCallerPathPrefix("github.com/pyoniverse/etl-transform/")

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, Version)

	applog.WithComponentAndFields("main", log.Fields{
		"version":    Version,
		"build_date": BuildDate,
		"stage":      appConfig.Stage,
	}).Info("배치 초기화 시작")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. 외부 자원 연결
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("AWS 설정 로드에 실패했습니다: %v", err)
	}
	s3Client := s3.NewFromConfig(awsCfg)
	sqsClient := sqs.NewFromConfig(awsCfg)
	busClient := eventbridge.NewFromConfig(awsCfg)

	repo, err := repository.NewMongoRepository(ctx, appConfig.Mongo.URI, appConfig.Mongo.CrawlingDB)
	if err != nil {
		log.Fatalf("수집 저장소 연결에 실패했습니다: %v", err)
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			applog.WithComponent("main").Warnf("수집 저장소 연결 해제에 실패했습니다: %v", err)
		}
	}()

	// 4. 파이프라인과 출력 계층 조립
	dl := downloader.NewS3Downloader(s3Client, appConfig.S3.BackupBucket)
	processors := []domain.Processor{
		product.NewProcessor(repo, dl, appConfig.Service.DB, appConfig.Service.ImageDomain),
		event.NewProcessor(repo, appConfig.Service.ImageDomain),
	}

	writer := out.NewS3Writer(s3Client, appConfig.S3.Bucket, appConfig.S3.KeyPrefix)
	queue := out.NewQueueNotifier(sqsClient, appConfig.Queue.UpdateQueue, appConfig.Queue.OpsQueue, appConfig.Queue.CC)
	bus := out.NewBusNotifier(busClient, appConfig.EventBus.Source, appConfig.EventBus.DetailType, appConfig.EventBus.Name)

	eng, err := engine.New(processors, writer, queue, bus, appConfig.Service.DB, appConfig.Stage)
	if err != nil {
		log.Fatalf("실행 엔진 생성에 실패했습니다: %v", err)
	}

	// 5. 실행 (일회성 배치 또는 데몬 모드)
	if *daemon {
		if err := scheduler.New(eng).Start(ctx, appConfig.Scheduler.TimeSpec); err != nil {
			log.Fatalf("스케줄러 실행에 실패했습니다: %v", err)
		}
		return
	}

	if err := eng.Run(ctx, *date); err != nil {
		applog.WithComponent("main").Errorf("배치 실행에 실패했습니다: %v", err)
		os.Exit(1)
	}
}
