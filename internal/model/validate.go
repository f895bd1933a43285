package model

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iancoleman/strcase"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

// validate 패키지 전역에서 공유하는 검증기 인스턴스입니다. (validator는 동시 사용에 안전합니다)
var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldFailure 단일 필드의 스키마 검증 실패 내역입니다.
type FieldFailure struct {
	Field      string `json:"field"`      // 실패한 필드 경로 (snake_case)
	Constraint string `json:"constraint"` // 위반한 제약 조건 태그
}

// RecordFailure 단일 레코드의 스키마 검증 실패 내역입니다.
type RecordFailure struct {
	Index  int            `json:"index"` // 입력 목록에서의 레코드 위치
	Fields []FieldFailure `json:"fields"`
}

// ValidationResult 레코드 목록 전체에 대한 스키마 검증 결과입니다.
//
// 첫 실패에서 중단하지 않고 모든 레코드를 끝까지 검사하여 레코드별 실패 내역을
// 누적합니다. 진단 정보(개별 실패 목록)와 집계 신호(OK/Err)를 함께 제공합니다.
type ValidationResult struct {
	Total    int             `json:"total"`
	Failures []RecordFailure `json:"failures"`
}

// OK 모든 레코드가 검증을 통과했는지 여부를 반환합니다.
func (r *ValidationResult) OK() bool {
	return len(r.Failures) == 0
}

// Err 검증 실패가 있으면 SchemaValidation 에러를, 없으면 nil을 반환합니다.
// kind는 에러 메시지에 포함할 레코드 종류 이름입니다. (예: "crawled products")
func (r *ValidationResult) Err(kind string) error {
	if r.OK() {
		return nil
	}
	return apperrors.Newf(apperrors.SchemaValidation,
		"%s 스키마 검증 실패: 전체 %d건 중 %d건", kind, r.Total, len(r.Failures))
}

// ValidateRecords 레코드 목록 전체를 스키마 검증하고 레코드별 실패 내역을 수집하여 반환합니다.
func ValidateRecords[T any](records []T) *ValidationResult {
	result := &ValidationResult{Total: len(records)}

	for i, record := range records {
		err := validate.Struct(record)
		if err == nil {
			continue
		}

		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			// InvalidValidationError 등 구조적인 문제도 실패로 집계합니다.
			result.Failures = append(result.Failures, RecordFailure{
				Index:  i,
				Fields: []FieldFailure{{Field: "", Constraint: err.Error()}},
			})
			continue
		}

		failure := RecordFailure{Index: i}
		for _, fe := range validationErrs {
			failure.Fields = append(failure.Fields, FieldFailure{
				Field:      fieldPath(fe),
				Constraint: fe.Tag(),
			})
		}
		result.Failures = append(result.Failures, failure)
	}

	return result
}

// fieldPath 검증 실패 필드의 네임스페이스를 snake_case 경로로 변환합니다.
// 예: "RawProductRecord.CrawledInfo.Spider" -> "crawled_info.spider"
func fieldPath(fe validator.FieldError) string {
	segments := strings.Split(fe.StructNamespace(), ".")
	if len(segments) > 1 {
		segments = segments[1:] // 최상위 타입 이름 제거
	}

	for i, segment := range segments {
		// 슬라이스 인덱스([n])는 그대로 두고 이름 부분만 변환합니다.
		if idx := strings.IndexByte(segment, '['); idx != -1 {
			segments[i] = strcase.ToSnake(segment[:idx]) + segment[idx:]
		} else {
			segments[i] = strcase.ToSnake(segment)
		}
	}

	return strings.Join(segments, ".")
}
