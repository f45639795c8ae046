package resolver

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whotakesshowers/wts/internal/api"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() error {
	return &api.StatusError{Method: "POST", Path: "/randomize", Code: http.StatusServiceUnavailable}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMock(MockResponse{Outcome: Outcome{CandidateID: "b"}})
	r := WithRetry(mock, retryConfig())

	out, err := r.Resolve(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "b", out.CandidateID)
	assert.Equal(t, "p1", out.ProjectID)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: unavailable()},
		MockResponse{Outcome: Outcome{CandidateID: "b"}},
	)
	r := WithRetry(mock, retryConfig())

	out, err := r.Resolve(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "b", out.CandidateID)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: unavailable()},
		MockResponse{Err: unavailable()},
		MockResponse{Err: unavailable()},
	)
	r := WithRetry(mock, retryConfig())

	_, err := r.Resolve(context.Background(), "p1")
	require.Error(t, err)

	var re *ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "p1", re.ProjectID)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_ClientErrorNotRetried(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: &api.StatusError{Code: http.StatusNotFound, Message: "项目不存在"}},
		MockResponse{Outcome: Outcome{CandidateID: "b"}},
	)
	r := WithRetry(mock, retryConfig())

	_, err := r.Resolve(context.Background(), "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_DeadlineNotRetried(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: context.DeadlineExceeded},
		MockResponse{Outcome: Outcome{CandidateID: "b"}},
	)
	r := WithRetry(mock, retryConfig())

	_, err := r.Resolve(context.Background(), "p1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_TransportErrorRetried(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: errors.New("connection refused")},
		MockResponse{Outcome: Outcome{CandidateID: "c"}},
	)
	r := WithRetry(mock, retryConfig())

	out, err := r.Resolve(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "c", out.CandidateID)
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMock(
		MockResponse{Err: unavailable()},
		MockResponse{Outcome: Outcome{CandidateID: "b"}},
	)
	cfg := retryConfig()
	cfg.InitialWait = time.Second
	cfg.MaxWait = time.Second
	r := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "p1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsMeansOne(t *testing.T) {
	mock := NewMock(MockResponse{Err: unavailable()})
	r := WithRetry(mock, RetryConfig{})

	_, err := r.Resolve(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestDefaultRetryConfigSingleAttempt(t *testing.T) {
	assert.Equal(t, 1, DefaultRetryConfig().MaxAttempts)
}
