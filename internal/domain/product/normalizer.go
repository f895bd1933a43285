package product

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pyoniverse/etl-transform/pkg/strutil"
)

var (
	// reOpeningBracket 여는 대괄호/중괄호를 소괄호로 통일합니다.
	reOpeningBracket = regexp.MustCompile(`[\[{]`)

	// reClosingBracket 닫는 대괄호/중괄호를 소괄호로 통일합니다.
	reClosingBracket = regexp.MustCompile(`[\]}]`)

	// reQuantity 상품명에 포함된 용량/수량 표기를 찾습니다. 예: "500ml", "1.5l", "4입"
	// 단위 교차 매칭을 막기 위해 "ml"이 "l"보다, "kg"이 "g"보다 먼저 옵니다.
	reQuantity = regexp.MustCompile(`(\d+(\.\d)?\d*)\s*(ml|l|kg|g|mm|p|t|입)`)

	// reEmptyParens 용량 표기를 들어낸 자리에 남은 빈 괄호를 제거합니다.
	reEmptyParens = regexp.MustCompile(`\(\s*\)`)

	// reDanglingClose 문자열 선두에 남은 짝 잃은 닫는 괄호를 제거합니다.
	reDanglingClose = regexp.MustCompile(`^\)`)

	// reDanglingOpen 문자열 말미에 남은 짝 잃은 여는 괄호를 제거합니다.
	// 남겨두면 용량 표기를 덧붙일 때마다 괄호가 하나씩 늘어납니다.
	reDanglingOpen = regexp.MustCompile(`[(\s]+$`)
)

// literalReplacements 알려진 축약 표기를 원래 표기로 복원하는 고정 치환 목록입니다.
var literalReplacements = [][2]string{
	{"dm)", "덴마크)"},
}

// NormalizeName 원본 상품명을 브랜드 간 병합 키로 사용할 정규화된 이름으로 변환합니다.
//
// 변환 규칙:
//  1. 앞뒤 공백 제거, 소문자화, 유니코드 NFC 정규화 (자모 분리 입력 보정)
//  2. 대괄호/중괄호를 소괄호로 통일
//  3. 본문에서 용량/수량 표기를 모두 들어내고, 첫 번째 표기만 "(값단위)" 형태로
//     이름 끝에 다시 붙임 (빈 괄호 등 잔재는 정리)
//  4. 연속 공백 축약 후 고정 치환 적용
//
// 이 함수는 멱등합니다. 이미 정규화된 이름을 다시 정규화해도 결과가 변하지 않으며,
// 이 성질 덕분에 이전 실행 결과와 현재 실행 결과를 같은 키로 병합할 수 있습니다.
func NormalizeName(name string) string {
	s := norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
	s = reOpeningBracket.ReplaceAllString(s, "(")
	s = reClosingBracket.ReplaceAllString(s, ")")

	if m := reQuantity.FindStringSubmatch(s); m != nil {
		value, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			unit := m[3]

			// 두 번째 이후의 용량 표기도 본문에서는 제거되지만, 키에 반영되는 것은
			// 첫 번째 표기 하나뿐입니다. 남겨두면 재정규화 시 키가 달라집니다.
			s = reQuantity.ReplaceAllString(s, "")
			s = reEmptyParens.ReplaceAllString(s, "")
			s = reDanglingClose.ReplaceAllString(s, "")
			s = reDanglingOpen.ReplaceAllString(s, "")
			s = fmt.Sprintf("%s(%s%s)", s, formatQuantity(value), unit)
		}
	}

	s = strutil.NormalizeSpaces(s)

	for _, replacement := range literalReplacements {
		s = strings.ReplaceAll(s, replacement[0], replacement[1])
	}

	return s
}

// formatQuantity 용량 값을 소수점이 반드시 포함된 표기로 변환합니다.
// 예: 500 -> "500.0", 1.5 -> "1.5"
//
// 정수 값이라도 소수점을 붙여야 이미 저장된 정규화 이름("(500.0ml)")과
// 같은 키로 떨어집니다.
func formatQuantity(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
