package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lifeos/api"
	"lifeos/migrations"
	"lifeos/notifications"
	"lifeos/ratelimit"
	"lifeos/reminders"
	diagnosticroutes "lifeos/routes/diagnostics"
	subroutes "lifeos/routes/subscriptions"
	taskroutes "lifeos/routes/tasks"
	"lifeos/state"
	"lifeos/subscriptions"
	"lifeos/tasks"
	"lifeos/zapchi"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 1mb
		r.Body = http.MaxBytesReader(w, r.Body, 1024*1024)

		if strings.HasPrefix(r.Header.Get("Origin"), "http://localhost:") {
			w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	state.Setup()

	migrations.Migrate(state.Context, state.Pool, state.Logger)

	if !migrations.HasMigrated(state.Context, state.Pool) {
		panic("database schema is not up to date after migration")
	}

	taskStore := tasks.NewPgStore(state.Pool)
	subStore := subscriptions.NewPgStore(state.Pool)

	dispatcher := notifications.NewDispatcher(
		notifications.NewWebPushTransport(state.Config.Notifications),
		state.Logger,
	)

	scheduler := reminders.NewScheduler(taskStore, subStore, dispatcher, state.Logger)
	scheduler.Interval = time.Duration(state.Config.Reminders.IntervalSeconds) * time.Second
	scheduler.Icon = state.Config.Notifications.Icon

	ctx, stop := signal.NotifyContext(state.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		zapchi.Logger(state.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	subRouter := subroutes.Router{
		Store:          subStore,
		Validator:      state.Validator,
		Logger:         state.Logger,
		VapidPublicKey: state.Config.Notifications.VapidPublicKey,
		RateLimit: ratelimit.Middleware(ratelimit.Bucket{
			BucketName: "subscribe",
			Requests:   10,
			Time:       time.Minute,
		}),
	}

	diagnosticroutes.Router{}.Routes(r)
	r.Get("/subscriptions/info", subRouter.GetInfo)

	r.Group(func(r chi.Router) {
		r.Use(api.Auth(state.Config.Auth.Password))

		subRouter.Routes(r)

		taskroutes.Router{
			Store:     taskStore,
			Validator: state.Validator,
			Logger:    state.Logger,
		}.Routes(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, "Not found")
	})

	srv := &http.Server{
		Addr:    state.Config.Meta.Port,
		Handler: r,
	}

	go func() {
		state.Logger.Infow("Starting server", "addr", srv.Addr)

		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			state.Logger.Fatalw("Error serving", "error", err)
		}
	}()

	<-ctx.Done()

	state.Logger.Info("Shutting down")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)

	if err != nil {
		state.Logger.Errorw("Error during shutdown", "error", err)
	}
}
