package types

import "time"

type NotificationInfo struct {
	PublicKey string `json:"public_key"`
}

// A browser push subscription as sent by the client (PushSubscription.toJSON)
type UserSubscription struct {
	Endpoint string `json:"endpoint" validate:"required,https" description:"The push service endpoint returned by PushSubscription"`
	Auth     string `json:"auth" validate:"required" description:"The auth key for the subscription returned by PushSubscription"`
	P256dh   string `json:"p256dh" validate:"required" description:"The p256dh key for the subscription returned by PushSubscription"`
}

// A stored browser push subscription, keyed by endpoint
type PushSubscription struct {
	Endpoint  string    `db:"endpoint" json:"endpoint" description:"The push service endpoint. Primary key"`
	Auth      string    `db:"auth" json:"-"`
	P256dh    string    `db:"p256dh" json:"-"`
	SubID     string    `db:"sub_id" json:"sub_id" description:"Opaque ID of the subscription, safe to show to clients"`
	UA        string    `db:"ua" json:"-"` // Must be parsed internally
	CreatedAt time.Time `db:"created_at" json:"created_at" description:"The time the subscription was registered"`
}

type SubscriptionBrowserInfo struct {
	// The OS of the browser
	OS         string `json:"os" description:"The OS of the browser"`
	Browser    string `json:"browser" description:"The browser"`
	BrowserVer string `json:"browser_ver" description:"The browser version"`
	Mobile     bool   `json:"mobile" description:"Whether the browser is on mobile or not"`
}

type SubscriptionGet struct {
	SubID       string                  `json:"sub_id"`
	CreatedAt   time.Time               `json:"created_at"`
	BrowserInfo SubscriptionBrowserInfo `json:"browser_info" description:"Information about the browser attached to the push subscription"`
}

type SubscriptionGetList struct {
	Subscriptions []SubscriptionGet `json:"subscriptions"`
}
