package scheduler

import (
	"context"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyoniverse/etl-transform/internal/pkg/errors"
)

type countingRunner struct {
	count atomic.Int32
	date  atomic.Value
}

func (r *countingRunner) Run(_ context.Context, date string) error {
	r.date.Store(date)
	r.count.Add(1)
	return nil
}

func TestSchedulerStart(t *testing.T) {
	t.Parallel()

	t.Run("주기마다 오늘 날짜로 실행", func(t *testing.T) {
		t.Parallel()

		runner := &countingRunner{}
		scheduler := New(runner)

		ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
		defer cancel()

		// 매초 실행
		err := scheduler.Start(ctx, "* * * * * *")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, runner.count.Load(), int32(1))

		date, ok := runner.date.Load().(string)
		require.True(t, ok)
		assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), date)
	})

	t.Run("잘못된 주기는 거부", func(t *testing.T) {
		t.Parallel()

		scheduler := New(&countingRunner{})

		err := scheduler.Start(context.Background(), "every day")

		require.Error(t, err)
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})
}
