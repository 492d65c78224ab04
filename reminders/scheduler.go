package reminders

import (
	"context"
	"time"

	"lifeos/notifications"
	"lifeos/subscriptions"
	"lifeos/tasks"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
)

// DefaultInterval is the reminder poll period. One tick per minute bucket.
const DefaultInterval = 60 * time.Second

// Scheduler is the recurring driver behind reminder delivery. Once per
// interval it loads candidate tasks and subscriptions, matches tasks due in
// the current minute, fans the payloads out and commits the notified flag.
//
// A single goroutine owns the ticker, so ticks never overlap. Every failure
// inside a tick is logged and contained; the next tick retries with fresh
// data. Delivery is at-least-once: if committing the notified flag fails
// after a dispatch attempt, the same task may be redelivered on a later
// tick. The reverse trade also holds, straight from the source system: one
// dispatch attempt exhausts the task's reminder even if every single
// subscriber failed.
type Scheduler struct {
	Tasks      tasks.Store
	Subs       subscriptions.Store
	Dispatcher *notifications.Dispatcher
	Logger     *zap.SugaredLogger

	// Interval defaults to DefaultInterval when zero.
	Interval time.Duration

	// Icon is passed through to reminder payloads.
	Icon string

	// Now overrides the clock in tests. Defaults to time.Now.
	Now func() time.Time

	stop chan struct{}
	done chan struct{}
}

func NewScheduler(taskStore tasks.Store, subStore subscriptions.Store, dispatcher *notifications.Dispatcher, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		Tasks:      taskStore,
		Subs:       subStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

func (s *Scheduler) interval() time.Duration {
	if s.Interval <= 0 {
		return DefaultInterval
	}

	return s.Interval
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}

// Start launches the tick loop. It returns immediately; the loop runs until
// Stop is called or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if s.stop != nil {
		panic("reminders: scheduler started twice")
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.Logger.Infow("Reminder scheduler started", "interval", s.interval().String())

	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Stop halts the loop, waiting for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}

	close(s.stop)
	<-s.done

	s.Logger.Info("Reminder scheduler stopped")
}

// Tick runs one load, match, dispatch, commit cycle against the clock's
// current minute. Exported so tests and one-shot tools can drive it without
// the ticker.
func (s *Scheduler) Tick(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			s.Logger.Errorw("Panic during reminder tick", "panic", rec)
		}
	}()

	// One clock read per tick keeps every task in this tick in the same
	// minute bucket.
	now := s.now()

	candidates, err := s.Tasks.FindCandidates(ctx)

	if err != nil {
		s.Logger.Errorw("Error loading candidate tasks, skipping tick", "error", err)
		return
	}

	subs, err := s.Subs.ListAll(ctx)

	if err != nil {
		s.Logger.Errorw("Error loading subscriptions, skipping tick", "error", err)
		return
	}

	due := MatchDue(now, candidates)

	if len(due) == 0 {
		return
	}

	s.Logger.Infow("Reminders due", "count", len(due), "subscribers", len(subs))

	dead := mapset.NewSet[string]()

	for _, task := range due {
		payload, err := notifications.BuildReminderPayload(task, s.Icon).Marshal()

		if err != nil {
			s.Logger.Errorw("Error building reminder payload", "error", err, "task_id", task.ID)
			continue
		}

		res := s.Dispatcher.Dispatch(ctx, payload, subs)

		s.Logger.Infow(
			"Dispatched reminder",
			"task_id", task.ID,
			"delivered", res.Delivered,
			"transient", res.Transient,
			"dead", len(res.DeadEndpoints),
		)

		// The dispatch attempt spends the task's one reminder, whatever
		// the per-subscriber outcomes were.
		err = s.Tasks.MarkNotified(ctx, task.ID)

		if err != nil {
			// At-least-once: the task stays eligible and may be
			// redelivered next tick.
			s.Logger.Errorw("Error marking task notified", "error", err, "task_id", task.ID)
		}

		dead.Append(res.DeadEndpoints...)
	}

	for endpoint := range dead.Iter() {
		err := s.Subs.DeleteByEndpoint(ctx, endpoint)

		if err != nil {
			s.Logger.Errorw("Error deleting dead subscription", "error", err, "endpoint", endpoint)
		}
	}
}
