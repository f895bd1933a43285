// Package converter 브랜드/카테고리의 이름과 ID 간 변환 규칙을 제공합니다.
//
// 변환 테이블은 프로세스 시작 시 한 번 정의되는 불변 데이터이며,
// 각 컴포넌트에 주입되어 사용됩니다.
package converter

import (
	"strings"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// 브랜드 ID 상수
const (
	BrandGS25        = 1
	BrandCU          = 2
	BrandSevenEleven = 3
	BrandEmart24     = 4
	BrandCSpace      = 5
)

// brandEntry 스파이더 이름에 포함된 부분 문자열과 브랜드 ID의 대응입니다.
type brandEntry struct {
	keyword string
	id      int
	name    string
}

// brandTable 스파이더 이름 해석 테이블입니다. 선언 순서대로 부분 문자열을 검사하며,
// "cu"는 다른 키워드의 부분 문자열과 겹치기 쉬우므로 마지막에 둡니다.
var brandTable = []brandEntry{
	{keyword: "gs25", id: BrandGS25, name: "GS25"},
	{keyword: "emart24", id: BrandEmart24, name: "EMART24"},
	{keyword: "seven", id: BrandSevenEleven, name: "SEVEN ELEVEN"},
	{keyword: "cspace", id: BrandCSpace, name: "CSPACE"},
	{keyword: "cu", id: BrandCU, name: "CU"},
}

// ResolveBrand 스파이더 이름에서 브랜드 ID를 해석합니다.
// 예: "gs25_products" -> 1 (GS25)
//
// 해석할 수 없는 스파이더는 UnknownBrand 에러를 반환하며, 호출자는 해당 레코드를
// 건너뛰고 계속 진행해야 합니다. (치명적 오류가 아닙니다)
func ResolveBrand(spider string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(spider))
	for _, entry := range brandTable {
		if strings.Contains(s, entry.keyword) {
			return entry.id, nil
		}
	}
	return 0, apperrors.Newf(apperrors.UnknownBrand, "스파이더 '%s'에 대응하는 브랜드가 없습니다", spider)
}

// BrandName 브랜드 ID에 대응하는 브랜드 이름을 반환합니다.
func BrandName(id int) (string, error) {
	for _, entry := range brandTable {
		if entry.id == id {
			return entry.name, nil
		}
	}
	return "", apperrors.Newf(apperrors.NotFound, "브랜드 ID %d가 정의되어 있지 않습니다", id)
}
