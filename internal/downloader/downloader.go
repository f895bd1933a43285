// Package downloader 직전 실행이 백업해 둔 상용 레코드 스냅샷을 내려받는 계층을 제공합니다.
package downloader

import (
	"context"
)

// Downloader 직전 실행 스냅샷 조회 인터페이스입니다.
//
// 스냅샷이 존재하지 않는 경우(첫 실행 등)는 빈 목록을 반환하며 오류가 아닙니다.
// 호출자는 빈 결과를 "이전 레코드 없음"으로 해석해야 합니다.
type Downloader interface {
	Download(ctx context.Context, dbName, relName, date string) ([]map[string]any, error)
}
