// Package reminders sends stored words back to users at the fixed clock
// instants of their cadence.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
)

const (
	defaultConcurrency = 8
	maintenanceTag     = "maintenance"
	maintenanceAt      = "03:30"
	hourTagPrefix      = "hour:"
)

type Options struct {
	Location        *time.Location
	CatchUpWindow   time.Duration
	DispatchTimeout time.Duration
	Concurrency     int
	LogRetention    time.Duration
	// Now replaces time.Now in tests.
	Now func() time.Time
}

// Scheduler keeps one gocron job per (user, slot). Every job of a user
// carries the user's tag, so re-arming one user never touches the jobs of
// another.
type Scheduler struct {
	cron   *gocron.Scheduler
	mu     sync.Mutex
	cards  CardSource
	sender Sender

	location        *time.Location
	catchUpWindow   time.Duration
	dispatchTimeout time.Duration
	concurrency     int
	retention       time.Duration
	now             func() time.Time

	ctx context.Context

	randMu sync.Mutex
	rand   *rand.Rand
}

func New(cards CardSource, sender Sender, opts Options) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	retention := opts.LogRetention
	if retention <= 0 {
		retention = db.DefaultDispatchLogRetention
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		cron:            gocron.NewScheduler(loc),
		cards:           cards,
		sender:          sender,
		location:        loc,
		catchUpWindow:   opts.CatchUpWindow,
		dispatchTimeout: opts.DispatchTimeout,
		concurrency:     concurrency,
		retention:       retention,
		now:             now,
		ctx:             context.Background(),
		rand:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func userTag(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func hourTag(hour int) string {
	return hourTagPrefix + strconv.Itoa(hour)
}

// Arm replaces the user's jobs with one job per slot of the saved cadence.
// Incomplete settings leave the user without jobs.
func (s *Scheduler) Arm(settings db.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeUserJobs(settings.UserID); err != nil {
		return err
	}
	if !settings.Complete() {
		return nil
	}

	tag := userTag(settings.UserID)
	for _, hour := range SlotHours(settings.RemindersPerDay) {
		_, err := s.cron.Every(1).Day().
			At(fmt.Sprintf("%02d:00", hour)).
			Tag(tag, hourTag(hour)).
			Do(s.runSlot, settings.UserID, hour)
		if err != nil {
			return fmt.Errorf("schedule reminder at %02d:00: %w", hour, err)
		}
	}
	logger.Debug("reminders armed", "user_id", settings.UserID, "hours", SlotHours(settings.RemindersPerDay))
	return nil
}

func (s *Scheduler) Disarm(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeUserJobs(userID)
}

func (s *Scheduler) removeUserJobs(userID int64) error {
	err := s.cron.RemoveByTag(userTag(userID))
	if err != nil && !errors.Is(err, gocron.ErrJobNotFoundWithTag) {
		return fmt.Errorf("remove reminder jobs: %w", err)
	}
	return nil
}

// ArmedSlots returns the hours the user currently has jobs for, ascending.
func (s *Scheduler) ArmedSlots(userID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.cron.FindJobsByTag(userTag(userID))
	if err != nil {
		return nil
	}
	var hours []int
	for _, job := range jobs {
		for _, tag := range job.Tags() {
			if !strings.HasPrefix(tag, hourTagPrefix) {
				continue
			}
			if hour, err := strconv.Atoi(strings.TrimPrefix(tag, hourTagPrefix)); err == nil {
				hours = append(hours, hour)
			}
		}
	}
	sort.Ints(hours)
	return hours
}

// Start arms every complete user, schedules the daily dispatch-log cleanup,
// starts the cron loop and catches up on a slot missed while the process was
// down.
func (s *Scheduler) Start(ctx context.Context) error {
	users, err := db.ListCompleteSettings()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	for _, user := range users {
		if err := s.Arm(user); err != nil {
			logger.Error("failed to arm reminders", "user_id", user.UserID, "error", err)
		}
	}

	s.mu.Lock()
	_, err = s.cron.Every(1).Day().At(maintenanceAt).Tag(maintenanceTag).Do(s.runPrune)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("schedule dispatch log cleanup: %w", err)
	}

	s.cron.StartAsync()
	logger.Info("reminder scheduler started", "users", len(users), "location", s.location.String())

	go s.CatchUp(ctx, s.now())
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// CatchUp dispatches the latest slot of today if it passed less than the
// catch-up window ago. The dispatch log keeps users already served from
// getting it twice. It reports whether a slot was dispatched.
func (s *Scheduler) CatchUp(ctx context.Context, now time.Time) bool {
	if s.catchUpWindow <= 0 {
		return false
	}
	hour, at, ok := LatestSlot(now, s.location)
	if !ok || now.Sub(at) >= s.catchUpWindow {
		return false
	}
	logger.Info("catching up on reminder slot", "hour", hour, "slot_at", at)
	if err := s.DispatchSlot(ctx, hour, now); err != nil {
		logger.Error("reminder catch-up failed", "hour", hour, "error", err)
	}
	return true
}

func (s *Scheduler) runSlot(userID int64, hour int) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.Dispatch(ctx, userID, hour, s.now()); err != nil {
		logger.Error("reminder dispatch failed", "user_id", userID, "hour", hour, "error", err)
	}
}

func (s *Scheduler) runPrune() {
	s.Prune(s.now())
}

// Prune deletes dispatch-log rows older than the retention period.
func (s *Scheduler) Prune(now time.Time) int64 {
	removed, err := db.PruneDispatches(now.Add(-s.retention))
	if err != nil {
		logger.Error("failed to prune dispatch log", "error", err)
		return 0
	}
	if removed > 0 {
		logger.Info("pruned dispatch log", "removed", removed)
	}
	return removed
}
