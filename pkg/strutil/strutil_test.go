package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"빈 문자열", "", ""},
		{"앞뒤 공백 제거", "  hello  ", "hello"},
		{"연속 공백 축약", "hello   world", "hello world"},
		{"탭과 개행 포함", "hello\t \nworld", "hello world"},
		{"한글 상품명", "  서울  흰우유 ", "서울 흰우유"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, NormalizeSpaces(tt.input))
		})
	}
}

func TestFormatCommas(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", FormatCommas(0))
	assert.Equal(t, "999", FormatCommas(999))
	assert.Equal(t, "1,000", FormatCommas(1000))
	assert.Equal(t, "1,234,567", FormatCommas(1234567))
	assert.Equal(t, "-12,345", FormatCommas(-12345))
}
