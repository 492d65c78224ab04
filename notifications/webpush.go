package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"lifeos/config"
	"lifeos/types"

	"github.com/SherClockHolmes/webpush-go"
)

// ErrEndpointGone is returned (wrapped) by a Transport when the push service
// reports the endpoint permanently unreachable. Callers classify it via
// errors.Is; any other error is a transient failure.
var ErrEndpointGone = errors.New("push endpoint permanently gone")

// Transport delivers an opaque payload to one subscription.
type Transport interface {
	Send(ctx context.Context, sub types.PushSubscription, payload []byte) error
}

// WebPushTransport sends payloads through the Web Push protocol with VAPID
// authentication.
type WebPushTransport struct {
	Config config.Notifications
}

func NewWebPushTransport(cfg config.Notifications) *WebPushTransport {
	return &WebPushTransport{Config: cfg}
}

func (t *WebPushTransport) Send(ctx context.Context, sub types.PushSubscription, payload []byte) error {
	s := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			Auth:   sub.Auth,
			P256dh: sub.P256dh,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, s, &webpush.Options{
		Subscriber:      t.Config.Subscriber,
		VAPIDPublicKey:  t.Config.VapidPublicKey,
		VAPIDPrivateKey: t.Config.VapidPrivateKey,
		TTL:             t.Config.TTL,
	})

	if err != nil {
		return fmt.Errorf("error sending notification: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return fmt.Errorf("push service returned %d: %w", resp.StatusCode, ErrEndpointGone)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push service returned %d: %s", resp.StatusCode, body)
	}

	return nil
}
