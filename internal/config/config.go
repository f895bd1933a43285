// Package config 애플리케이션 설정의 로드와 검증을 담당합니다.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
	"github.com/pyoniverse/etl-transform/pkg/cronx"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "etl-transform"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 탐색하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// DefaultLogRetentionDays 로그 파일 보존 기간 기본값
	DefaultLogRetentionDays = 30

	// DefaultSchedulerTimeSpec 데몬 모드의 기본 실행 주기입니다. (매일 새벽 5시)
	DefaultSchedulerTimeSpec = "0 0 5 * * *"
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	Stage     string          `json:"stage"`
	Log       LogConfig       `json:"log"`
	Mongo     MongoConfig     `json:"mongo"`
	Service   ServiceConfig   `json:"service"`
	S3        S3Config        `json:"s3"`
	Queue     QueueConfig     `json:"queue"`
	EventBus  EventBusConfig  `json:"event_bus"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	switch c.Stage {
	case "dev", "test", "prod":
	default:
		return apperrors.Newf(apperrors.InvalidInput, "스테이지(stage)는 dev/test/prod 중 하나여야 합니다: '%s'", c.Stage)
	}

	if c.Log.RetentionDays < 1 {
		return apperrors.Newf(apperrors.InvalidInput, "로그 보존 기간(log.retention_days)은 1 이상이어야 합니다: %d", c.Log.RetentionDays)
	}

	if err := c.Mongo.validate(); err != nil {
		return err
	}
	if err := c.Service.validate(); err != nil {
		return err
	}
	if err := c.S3.validate(); err != nil {
		return err
	}
	if err := c.Queue.validate(); err != nil {
		return err
	}
	if err := c.EventBus.validate(); err != nil {
		return err
	}
	return c.Scheduler.validate()
}

// LogConfig 로그 파일 보존 정책 설정 구조체
type LogConfig struct {
	RetentionDays int `json:"retention_days"`
}

// MongoConfig 수집 저장소 연결 설정 구조체
type MongoConfig struct {
	URI        string `json:"uri"`
	CrawlingDB string `json:"crawling_db"`
}

func (c *MongoConfig) validate() error {
	if strings.TrimSpace(c.URI) == "" {
		return apperrors.New(apperrors.InvalidInput, "수집 저장소 URI(mongo.uri)가 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.CrawlingDB) == "" {
		return apperrors.New(apperrors.InvalidInput, "수집 DB 이름(mongo.crawling_db)이 설정되지 않았습니다")
	}
	return nil
}

// ServiceConfig 상용 데이터 식별자와 이미지 도메인 설정 구조체
type ServiceConfig struct {
	DB          string `json:"db"`
	ImageDomain string `json:"image_domain"`
}

func (c *ServiceConfig) validate() error {
	if strings.TrimSpace(c.DB) == "" {
		return apperrors.New(apperrors.InvalidInput, "상용 DB 이름(service.db)이 설정되지 않았습니다")
	}
	if !strings.HasPrefix(c.ImageDomain, "http://") && !strings.HasPrefix(c.ImageDomain, "https://") {
		return apperrors.Newf(apperrors.InvalidInput, "이미지 도메인(service.image_domain)은 http(s) URL이어야 합니다: '%s'", c.ImageDomain)
	}
	return nil
}

// S3Config 결과 기록 버킷과 백업 버킷 설정 구조체
type S3Config struct {
	Bucket       string `json:"bucket"`
	KeyPrefix    string `json:"key_prefix"`
	BackupBucket string `json:"backup_bucket"`
}

func (c *S3Config) validate() error {
	if strings.TrimSpace(c.Bucket) == "" {
		return apperrors.New(apperrors.InvalidInput, "결과 버킷(s3.bucket)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.BackupBucket) == "" {
		return apperrors.New(apperrors.InvalidInput, "백업 버킷(s3.backup_bucket)이 설정되지 않았습니다")
	}
	return nil
}

// QueueConfig 업데이트 의도 큐와 운영 메시지 큐 설정 구조체
type QueueConfig struct {
	UpdateQueue string   `json:"update_queue"`
	OpsQueue    string   `json:"ops_queue"`
	CC          []string `json:"cc"`
}

func (c *QueueConfig) validate() error {
	if strings.TrimSpace(c.UpdateQueue) == "" {
		return apperrors.New(apperrors.InvalidInput, "업데이트 큐 이름(queue.update_queue)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.OpsQueue) == "" {
		return apperrors.New(apperrors.InvalidInput, "운영 큐 이름(queue.ops_queue)이 설정되지 않았습니다")
	}
	return nil
}

// EventBusConfig 완료 이벤트 발행 설정 구조체
type EventBusConfig struct {
	Source     string `json:"source"`
	DetailType string `json:"detail_type"`
	Name       string `json:"name"`
}

func (c *EventBusConfig) validate() error {
	if strings.TrimSpace(c.Source) == "" || strings.TrimSpace(c.DetailType) == "" || strings.TrimSpace(c.Name) == "" {
		return apperrors.New(apperrors.InvalidInput, "이벤트 버스 설정(event_bus.source/detail_type/name)이 비어있습니다")
	}
	return nil
}

// SchedulerConfig 데몬 모드의 실행 주기 설정 구조체
type SchedulerConfig struct {
	TimeSpec string `json:"time_spec"`
}

func (c *SchedulerConfig) validate() error {
	if err := cronx.Validate(c.TimeSpec); err != nil {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "스케줄러 주기(scheduler.time_spec) 설정이 유효하지 않습니다: '%s'", c.TimeSpec)
	}
	return nil
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 우선순위는 기본값 < 설정 파일 < 환경 변수입니다. 환경 변수는 PYONIVERSE_ 접두사를
// 사용하며 이중 언더스코어(__)가 계층 구분자입니다.
// 예: PYONIVERSE_MONGO__URI -> mongo.uri
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"stage":               "dev",
		"log.retention_days":  DefaultLogRetentionDays,
		"scheduler.time_spec": DefaultSchedulerTimeSpec,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	if err := k.Load(env.Provider("PYONIVERSE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "PYONIVERSE_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 파일에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
