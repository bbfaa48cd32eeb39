package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecommerce-platform/orders/internal/domain"
	"github.com/ecommerce-platform/orders/internal/logger"
	"github.com/ecommerce-platform/orders/internal/messaging"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

type fakeHandler struct {
	calls    int
	failures int
	err      error
	onCall   func(calls int)
}

func (h *fakeHandler) OnEvent(_ context.Context, _ messaging.Envelope) error {
	h.calls++
	if h.onCall != nil {
		h.onCall(h.calls)
	}
	if h.calls <= h.failures {
		return h.err
	}
	return nil
}

func rawEnvelope(t *testing.T) []byte {
	t.Helper()

	detail, err := json.Marshal(domain.Order{OrderID: "O1", Status: domain.StatusCreated})
	require.NoError(t, err)
	b, err := json.Marshal(messaging.Envelope{
		Source:     "ecommerce.warehouse",
		DetailType: domain.EventPackageCreated,
		Resources:  []string{"O1"},
		Detail:     detail,
	})
	require.NoError(t, err)
	return b
}

func TestProcessMessageCommitsOnSuccess(t *testing.T) {
	h := &fakeHandler{}

	ok := processMessage(context.Background(), h, rawEnvelope(t))

	assert.True(t, ok)
	assert.Equal(t, 1, h.calls)
}

func TestProcessMessageRetriesTransientFailureInPlace(t *testing.T) {
	// store-write and publish failures are transient; the same message must
	// be retried until it goes through, never abandoned for the next one
	h := &fakeHandler{failures: 2, err: errors.New("connection reset")}

	ok := processMessage(context.Background(), h, rawEnvelope(t))

	assert.True(t, ok)
	assert.Equal(t, 3, h.calls)
}

func TestProcessMessageCommitsDroppableErrors(t *testing.T) {
	h := &fakeHandler{failures: 10, err: messaging.ErrMalformedEvent}

	ok := processMessage(context.Background(), h, rawEnvelope(t))

	// redelivery cannot fix a malformed event: no retry, commit and move on
	assert.True(t, ok)
	assert.Equal(t, 1, h.calls)
}

func TestProcessMessageCommitsInvalidJSON(t *testing.T) {
	h := &fakeHandler{}

	ok := processMessage(context.Background(), h, []byte("{not json"))

	assert.True(t, ok)
	assert.Zero(t, h.calls)
}

func TestProcessMessageHoldsOffsetOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := &fakeHandler{failures: 10, err: errors.New("broker unavailable")}
	h.onCall = func(calls int) {
		if calls == 2 {
			cancel()
		}
	}

	ok := processMessage(ctx, h, rawEnvelope(t))

	// cancelled mid-retry: the offset must stay uncommitted so the platform
	// redelivers the event after restart
	assert.False(t, ok)
}
