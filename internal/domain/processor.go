// Package domain 엔티티 타입별 정제 파이프라인의 공통 계약을 정의합니다.
//
// 각 파이프라인은 전처리(적재+검증) -> 처리(정제/병합/변환) -> 후처리(투영+상태+검증)의
// 순차 단계 머신이며, 단계 안에서 재시도하지 않습니다. 어느 단계의 실패든 해당
// 엔티티 타입의 실행만 중단시키고 부분 출력을 남기지 않습니다.
package domain

import (
	"context"
)

// Result 파이프라인 하나가 만들어낸 최종 산출물입니다.
type Result struct {
	// Data 검증을 통과한 상용 레코드 목록입니다. 벌크 기록기로 그대로 전달됩니다.
	Data []any

	// Updated 직전 스냅샷 대비 새로 생겼거나 브랜드 상태가 바뀐 레코드의 정규화된
	// 이름 목록입니다. 다운스트림이 변경분만 반영할 때 사용합니다.
	Updated []string
}

// Processor 엔티티 타입(products, events) 하나의 정제 파이프라인입니다.
//
// 서로 다른 엔티티 타입은 소스 컬렉션과 출력 키가 겹치지 않으므로 동시에 실행해도
// 안전합니다. 같은 날짜로 재실행해도 결과가 수렴해야 합니다. (멱등성)
type Processor interface {
	// Name 파이프라인이 다루는 릴레이션 이름을 반환합니다. (소스 컬렉션이자 출력 키 접두어)
	Name() string

	// Run 지정된 실행 날짜(YYYY-MM-DD)로 파이프라인 전체를 실행합니다.
	Run(ctx context.Context, date string) (*Result, error)
}
