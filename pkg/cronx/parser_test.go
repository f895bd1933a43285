package cronx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"6필드 표현식", "0 0 5 * * *", false},
		{"Descriptor 표현식", "@daily", false},
		{"간격 표현식", "@every 24h", false},
		{"5필드 표현식은 거부", "0 5 * * *", true},
		{"빈 표현식", "", true},
		{"잘못된 필드 값", "0 0 25 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
