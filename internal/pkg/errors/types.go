package errors

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 알 수 없는 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 시스템 또는 인프라 오류 (디스크, 네트워크, 외부 저장소 등)
	System

	// InvalidInput 잘못된 입력값 (실행 인자, 설정값 검증 실패)
	InvalidInput

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// SchemaValidation 입력 또는 출력 레코드 집합이 스키마 필수 항목 검사를 통과하지 못함
	// (해당 스테이지에 치명적이며, 레코드별 실패 내역을 함께 전달합니다)
	SchemaValidation

	// IdentityCorruption 동일한 (spider, id) 식별자가 서로 다른 url로 관측됨
	// (데이터 오염으로 간주하며, 암묵적으로 보정하지 않고 즉시 실패시킵니다)
	IdentityCorruption

	// UnknownBrand 스파이더 이름을 브랜드로 해석할 수 없음 (해당 레코드만 건너뛰고 계속 진행)
	UnknownBrand

	// ExecutionFailed 비즈니스 로직 또는 외부 프로세스 수행 실패
	ExecutionFailed

	// ParsingFailed 데이터 파싱 또는 형식 변환 실패
	ParsingFailed
)

// String ErrorType을 로그 출력용 문자열로 변환합니다.
func (t ErrorType) String() string {
	switch t {
	case Internal:
		return "Internal"
	case System:
		return "System"
	case InvalidInput:
		return "InvalidInput"
	case NotFound:
		return "NotFound"
	case SchemaValidation:
		return "SchemaValidation"
	case IdentityCorruption:
		return "IdentityCorruption"
	case UnknownBrand:
		return "UnknownBrand"
	case ExecutionFailed:
		return "ExecutionFailed"
	case ParsingFailed:
		return "ParsingFailed"
	default:
		return "Unknown"
	}
}
