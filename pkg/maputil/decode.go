// Package maputil 맵(Map) 데이터 처리 및 구조체 변환을 위한 유틸리티 기능을 제공합니다.
package maputil

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode 입력된 맵(Map)이나 인터페이스 데이터를 지정된 제네릭 타입 T의 구조체로 변환하여 반환합니다.
//
// 내부적으로 `mapstructure` 라이브러리를 활용하며, 다음 동작이 적용되어 있습니다.
//
//   - 유연한 타입 변환 (Weakly Typed): "123" -> 123 (int) 등 타입을 자동으로 보정합니다.
//     수집 저장소의 문서는 숫자 타입이 int32/int64/float64로 뒤섞여 들어오므로 필수입니다.
//   - 태그 지원: 구조체의 `json` 태그를 기준으로 필드를 매핑합니다.
//   - 알 수 없는 필드 무시: 구조체에 정의되지 않은 필드가 입력에 있어도 에러 없이 무시됩니다.
//
// 사용 예시:
//
//	record, err := maputil.Decode[model.RawProductRecord](doc)
func Decode[T any](input any) (*T, error) {
	output := new(T)
	if err := DecodeTo(input, output); err != nil {
		return nil, err
	}
	return output, nil
}

// DecodeTo 입력된 데이터를 대상 구조체 포인터(output)에 디코딩하여 값을 채웁니다.
// output 인자는 반드시 `nil`이 아닌 포인터여야 합니다.
func DecodeTo[T any](input any, output *T) error {
	if output == nil {
		return errors.New("디코딩 결과를 저장할 output 포인터가 nil입니다")
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: output,

		TagName: "json",

		WeaklyTypedInput: true,
		Squash:           true,

		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("입력 데이터를 %T(으)로 디코딩하는 데 실패했습니다: %w", output, err)
	}

	return nil
}
