// Package log logrus 기반의 애플리케이션 로깅 초기화 및 헬퍼 기능을 제공합니다.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// defaultLogDirectoryName 로그 파일이 저장될 디렉토리 이름
	defaultLogDirectoryName = "logs"

	// defaultLogFileExtension 로그 파일의 확장자
	defaultLogFileExtension = "log"

	// defaultMaxFileSizeMB 단일 로그 파일의 최대 크기(MB), 초과 시 롤링됩니다.
	defaultMaxFileSizeMB = 100
)

var (
	// callerFunctionPathPrefix 호출자 경로에서 축약할 prefix
	callerFunctionPathPrefix = ""
)

func init() {
	log.SetLevel(log.InfoLevel)
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = fmt.Sprintf("%s(line:%d)", frame.Function, frame.Line)
			if callerFunctionPathPrefix != "" && strings.HasPrefix(function, callerFunctionPathPrefix) {
				function = "..." + function[len(callerFunctionPathPrefix):]
			}

			return
		},
	})
}

// Init 로그 출력을 초기화합니다.
//
// 로그는 기본적으로 로그 디렉토리 하위의 파일에 기록되며, 파일 크기와 보존 기간에 따라
// 자동으로 롤링/삭제됩니다. debug가 true이면 로그 레벨을 Debug로 낮추고 표준 출력에도
// 동일한 로그를 출력합니다.
//
// 반환된 io.Closer는 애플리케이션 종료 시점에 호출하여 로그 파일 핸들을 정리해야 합니다.
func Init(debug bool, appName string, retentionDays int) io.Closer {
	fileName := fmt.Sprintf("%s.%s", appName, defaultLogFileExtension)

	rollingFile := &lumberjack.Logger{
		Filename:  filepath.Join(defaultLogDirectoryName, fileName),
		MaxSize:   defaultMaxFileSizeMB,
		MaxAge:    retentionDays,
		LocalTime: true,
		Compress:  true,
	}

	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetOutput(io.MultiWriter(os.Stdout, rollingFile))
	} else {
		log.SetOutput(rollingFile)
	}

	return rollingFile
}

// SetCallerPathPrefix 호출자 정보에서 축약할 경로 prefix를 설정합니다.
// main() 함수 초기에 호출하여 호출자 경로 표시를 간결하게 만들 수 있습니다.
func SetCallerPathPrefix(prefix string) {
	callerFunctionPathPrefix = prefix
}

// WithComponent 컴포넌트 이름이 태깅된 로그 엔트리를 반환합니다.
func WithComponent(component string) *log.Entry {
	return log.WithField("component", component)
}

// WithComponentAndFields 컴포넌트 이름과 추가 필드가 태깅된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields log.Fields) *log.Entry {
	return log.WithField("component", component).WithFields(fields)
}
