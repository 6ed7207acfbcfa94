package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	return Options{Timeout: time.Second, MaxRetries: 3, RetryDelay: time.Millisecond}
}

func TestJobBegin_Metadata(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 4, fastOptions())
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.Equal(t, "analysis", meta.JobType)
	assert.Equal(t, "m-1", meta.MeetingID)
	assert.Equal(t, 4, meta.WorkerID)
	assert.Equal(t, 3, meta.MaxRetries)
	assert.NotEqual(t, uuid.Nil, meta.JobID)

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestJobEnd_RetriesRetryableErrors(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 0, fastOptions())
	defer cancel()

	calls := 0
	err := JobEnd(ctx, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("status 503: service unavailable")
		}
		assert.Equal(t, 2, GetRetryAttempt(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestJobEnd_StopsOnNonRetryable(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 0, fastOptions())
	defer cancel()

	calls := 0
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return errors.New("meeting not found")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-retryable")
	assert.Equal(t, 1, calls)
}

func TestJobEnd_ExhaustsRetries(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 0, fastOptions())
	defer cancel()

	calls := 0
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return errors.New("429 too many requests")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries (3) exceeded")
	assert.Equal(t, 3, calls)
}

func TestJobEnd_PermanentErrorIsNotRetried(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 0, fastOptions())
	defer cancel()

	cause := errors.New("append decision: connection reset by peer")
	calls := 0
	err := JobEnd(ctx, func(context.Context) error {
		calls++
		return Permanent(cause)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "non-retryable")
	assert.Equal(t, 1, calls)
}

func TestJobEnd_RecoversPanic(t *testing.T) {
	ctx, cancel := JobBegin(context.Background(), "analysis", "m-1", 0, fastOptions())
	defer cancel()

	err := JobEnd(ctx, func(context.Context) error {
		panic("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered: boom")
}

func TestIsRetryableError(t *testing.T) {
	cases := map[error]bool{
		nil: false,
		errors.New("dial tcp: connection refused"):       true,
		errors.New("googleapi: Error 429"):               true,
		errors.New("RESOURCE_EXHAUSTED"):                 true,
		fmt.Errorf("wrap: %w", context.DeadlineExceeded): true,
		context.Canceled:                                 false,
		errors.New("invalid argument"):                   false,
		errors.New("status 502 bad gateway"):             true,
		Permanent(errors.New("connection reset")):        false,
	}
	for err, want := range cases {
		assert.Equal(t, want, IsRetryableError(err), "%v", err)
	}
	assert.Nil(t, Permanent(nil))
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, time.Second, CalculateBackoff(0, time.Second))
	assert.Equal(t, 4*time.Second, CalculateBackoff(2, time.Second))
	assert.Equal(t, 60*time.Second, CalculateBackoff(10, time.Second))
	assert.Equal(t, time.Second, CalculateBackoff(-1, time.Second))
}
