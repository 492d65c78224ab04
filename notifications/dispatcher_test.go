package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"lifeos/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTransport classifies sends by per-endpoint scripting and records every
// payload it saw.
type fakeTransport struct {
	mu sync.Mutex

	// gone endpoints return ErrEndpointGone, flaky ones a transient error
	gone  map[string]bool
	flaky map[string]bool

	sent map[string][][]byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		gone:  map[string]bool{},
		flaky: map[string]bool{},
		sent:  map[string][][]byte{},
	}
}

func (f *fakeTransport) Send(_ context.Context, sub types.PushSubscription, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gone[sub.Endpoint] {
		return fmt.Errorf("push service returned 410: %w", ErrEndpointGone)
	}

	if f.flaky[sub.Endpoint] {
		return errors.New("push service returned 503")
	}

	f.sent[sub.Endpoint] = append(f.sent[sub.Endpoint], payload)

	return nil
}

func (f *fakeTransport) sentTo(endpoint string) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sent[endpoint]
}

func sub(endpoint string) types.PushSubscription {
	return types.PushSubscription{
		Endpoint: endpoint,
		Auth:     "auth-" + endpoint,
		P256dh:   "p256dh-" + endpoint,
	}
}

func testDispatcher(transport Transport) *Dispatcher {
	return NewDispatcher(transport, zap.NewNop().Sugar())
}

func TestDispatch_AllDelivered(t *testing.T) {
	transport := newFakeTransport()
	d := testDispatcher(transport)

	res := d.Dispatch(context.Background(), []byte(`{"title":"x"}`), []types.PushSubscription{
		sub("https://push.example/a"),
		sub("https://push.example/b"),
	})

	assert.Equal(t, 2, res.Delivered)
	assert.Zero(t, res.Transient)
	assert.Empty(t, res.DeadEndpoints)
	assert.Len(t, transport.sentTo("https://push.example/a"), 1)
	assert.Len(t, transport.sentTo("https://push.example/b"), 1)
}

func TestDispatch_ClassifiesMixedOutcomes(t *testing.T) {
	transport := newFakeTransport()
	transport.gone["https://push.example/dead"] = true
	transport.flaky["https://push.example/flaky"] = true

	d := testDispatcher(transport)

	res := d.Dispatch(context.Background(), []byte(`{}`), []types.PushSubscription{
		sub("https://push.example/ok"),
		sub("https://push.example/dead"),
		sub("https://push.example/flaky"),
	})

	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, 1, res.Transient)
	assert.Equal(t, []string{"https://push.example/dead"}, res.DeadEndpoints)

	// the flaky subscription is not reported dead
	assert.NotContains(t, res.DeadEndpoints, "https://push.example/flaky")
}

func TestDispatch_OnePermanentAmongThree(t *testing.T) {
	transport := newFakeTransport()
	transport.gone["https://push.example/dead"] = true

	d := testDispatcher(transport)

	res := d.Dispatch(context.Background(), []byte(`{}`), []types.PushSubscription{
		sub("https://push.example/a"),
		sub("https://push.example/dead"),
		sub("https://push.example/b"),
	})

	assert.Equal(t, 2, res.Delivered)
	require.Len(t, res.DeadEndpoints, 1)
	assert.Equal(t, "https://push.example/dead", res.DeadEndpoints[0])
}

func TestDispatch_DuplicateEndpointsSentOnce(t *testing.T) {
	transport := newFakeTransport()
	d := testDispatcher(transport)

	res := d.Dispatch(context.Background(), []byte(`{}`), []types.PushSubscription{
		sub("https://push.example/a"),
		sub("https://push.example/a"),
		sub("https://push.example/a"),
	})

	assert.Equal(t, 1, res.Delivered)
	assert.Len(t, transport.sentTo("https://push.example/a"), 1)
}

func TestDispatch_EmptySubscriptionList(t *testing.T) {
	d := testDispatcher(newFakeTransport())

	res := d.Dispatch(context.Background(), []byte(`{}`), nil)

	assert.Zero(t, res.Delivered)
	assert.Zero(t, res.Transient)
	assert.Empty(t, res.DeadEndpoints)
}

func TestDispatch_LargeFanOut(t *testing.T) {
	transport := newFakeTransport()
	d := testDispatcher(transport)

	var subs []types.PushSubscription

	for i := 0; i < 200; i++ {
		subs = append(subs, sub(fmt.Sprintf("https://push.example/%d", i)))
	}

	res := d.Dispatch(context.Background(), []byte(`{}`), subs)

	assert.Equal(t, 200, res.Delivered)
	assert.Len(t, res.Results, 200)
}

func TestDeliveryStatus_String(t *testing.T) {
	assert.Equal(t, "delivered", StatusDelivered.String())
	assert.Equal(t, "transient_failure", StatusTransientFailure.String())
	assert.Equal(t, "permanent_failure", StatusPermanentFailure.String())
}
