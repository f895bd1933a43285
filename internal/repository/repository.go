// Package repository 수집 저장소(원시 레코드 스토어)의 조회 계층을 제공합니다.
package repository

import (
	"context"
)

// FindOptions 조회 시 사용할 필터/프로젝션/정렬/제한 조건입니다.
// 비어있는 필드는 조건 없음으로 해석됩니다.
type FindOptions struct {
	Filter     map[string]any
	Projection map[string]any
	Sort       map[string]int
	Limit      int64
}

// Repository 릴레이션 단위의 문서 조회 인터페이스입니다.
//
// 파이프라인은 엔티티 타입당 한 번, 현재 수집 주기의 전체 배치를 이 인터페이스로
// 가져옵니다. 반환 순서는 정렬 조건을 따르며, 정렬 조건이 없으면 저장소의 기본
// 식별자 순서를 따릅니다.
type Repository interface {
	Find(ctx context.Context, relName string, opts FindOptions) ([]map[string]any, error)
	Close(ctx context.Context) error
}
