// Push subscription registration endpoints.
package subscriptions

import (
	"net/http"

	"lifeos/api"
	substore "lifeos/subscriptions"
	"lifeos/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Router struct {
	Store     substore.Store
	Validator *validator.Validate
	Logger    *zap.SugaredLogger

	// VapidPublicKey is handed to clients so they can subscribe.
	VapidPublicKey string

	// RateLimit guards subscription creation when set. Left nil in tests.
	RateLimit func(next http.Handler) http.Handler
}

// Routes mounts the authenticated subscription endpoints. GetInfo is left
// out so callers can expose it without the password gate.
func (b Router) Routes(r chi.Router) {
	r.Get("/subscriptions", b.list)
	r.Delete("/subscriptions", b.delete)

	create := http.Handler(http.HandlerFunc(b.create))

	if b.RateLimit != nil {
		create = b.RateLimit(create)
	}

	r.Method(http.MethodPost, "/subscriptions", create)
}

// GetInfo hands out the VAPID public key clients need to subscribe.
func (b Router) GetInfo(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, types.NotificationInfo{
		PublicKey: b.VapidPublicKey,
	})
}

func (b Router) create(w http.ResponseWriter, r *http.Request) {
	var sub types.UserSubscription

	err := json.NewDecoder(r.Body).Decode(&sub)

	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = b.Validator.Struct(sub)

	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid subscription: "+err.Error())
		return
	}

	err = b.Store.Upsert(r.Context(), types.PushSubscription{
		Endpoint: sub.Endpoint,
		Auth:     sub.Auth,
		P256dh:   sub.P256dh,
		UA:       r.UserAgent(),
	})

	if err != nil {
		b.Logger.Errorw("Error upserting subscription", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Error storing subscription")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (b Router) list(w http.ResponseWriter, r *http.Request) {
	subs, err := b.Store.ListAll(r.Context())

	if err != nil {
		b.Logger.Errorw("Error listing subscriptions", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Error listing subscriptions")
		return
	}

	out := types.SubscriptionGetList{
		Subscriptions: make([]types.SubscriptionGet, 0, len(subs)),
	}

	for _, sub := range subs {
		ua := useragent.Parse(sub.UA)

		out.Subscriptions = append(out.Subscriptions, types.SubscriptionGet{
			SubID:     sub.SubID,
			CreatedAt: sub.CreatedAt,
			BrowserInfo: types.SubscriptionBrowserInfo{
				OS:         ua.OS,
				Browser:    ua.Name,
				BrowserVer: ua.Version,
				Mobile:     ua.Mobile,
			},
		})
	}

	api.WriteJSON(w, http.StatusOK, out)
}

func (b Router) delete(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")

	if endpoint == "" {
		api.WriteError(w, http.StatusBadRequest, "endpoint query parameter is required")
		return
	}

	err := b.Store.DeleteByEndpoint(r.Context(), endpoint)

	if err != nil {
		b.Logger.Errorw("Error deleting subscription", "error", err)
		api.WriteError(w, http.StatusInternalServerError, "Error deleting subscription")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
