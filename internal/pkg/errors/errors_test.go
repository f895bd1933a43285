package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// Basic Error Creation Tests
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
	}{
		{"스키마 검증 실패", SchemaValidation, "레코드 검증에 실패하였습니다"},
		{"식별자 오염", IdentityCorruption, "(spider, id)가 서로 다른 url을 가리킵니다"},
		{"알 수 없는 브랜드", UnknownBrand, "스파이더를 브랜드로 해석할 수 없습니다"},
		{"빈 메시지", Internal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := New(tt.errType, tt.message)
			require.Error(t, err)

			var appErr *AppError
			require.True(t, As(err, &appErr))
			assert.Equal(t, tt.errType, appErr.Type())
			assert.Equal(t, tt.message, appErr.Message())
			assert.NotEmpty(t, appErr.Stack())
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(SchemaValidation, "검증 실패 레코드 수: %d", 3)
	assert.Contains(t, err.Error(), "검증 실패 레코드 수: 3")
	assert.Contains(t, err.Error(), "[SchemaValidation]")
}

// =============================================================================
// Wrapping Tests
// =============================================================================

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("표준 에러 래핑", func(t *testing.T) {
		t.Parallel()

		err := Wrap(errStd, System, "저장소 접근 실패")
		require.Error(t, err)
		assert.Equal(t, errStd, RootCause(err))
		assert.True(t, Is(err, System))
	})

	t.Run("nil 래핑 시 nil 반환", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, Wrap(nil, System, "무시됨"))
		assert.NoError(t, Wrapf(nil, System, "무시됨 %d", 1))
	})

	t.Run("체인 내 모든 타입 탐지", func(t *testing.T) {
		t.Parallel()

		err := New(IdentityCorruption, "오염된 식별자")
		err = Wrap(err, ExecutionFailed, "히스토리 병합 실패")

		assert.True(t, Is(err, IdentityCorruption))
		assert.True(t, Is(err, ExecutionFailed))
		assert.False(t, Is(err, SchemaValidation))
	})
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"nil 에러", nil, Unknown},
		{"표준 에러", errStd, Unknown},
		{"단일 AppError", New(UnknownBrand, "브랜드 없음"), UnknownBrand},
		{
			"다중 래핑",
			Wrap(New(SchemaValidation, "검증 실패"), ExecutionFailed, "전처리 실패"),
			SchemaValidation,
		},
		{
			"외부 에러 래핑",
			Wrap(errStd, NotFound, "이전 스냅샷 없음"),
			NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, UnderlyingType(tt.err))
		})
	}
}

// =============================================================================
// Formatting Tests
// =============================================================================

func TestFormat(t *testing.T) {
	t.Parallel()

	err := Wrap(errStd, System, "S3 객체 조회 실패")

	plain := fmt.Sprintf("%v", err)
	assert.Equal(t, "[System] S3 객체 조회 실패: standard error", plain)

	detailed := fmt.Sprintf("%+v", err)
	assert.True(t, strings.Contains(detailed, "Stack trace:"))
	assert.True(t, strings.Contains(detailed, "Caused by:"))

	quoted := fmt.Sprintf("%q", err)
	assert.True(t, strings.HasPrefix(quoted, `"`))
}
