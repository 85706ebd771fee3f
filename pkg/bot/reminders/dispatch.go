package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/logger"
	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
	"golang.org/x/sync/errgroup"
)

// CardSource resolves a stored word into the card that is sent;
// *vocab.Service satisfies it.
type CardSource interface {
	CardFor(ctx context.Context, settings db.UserSettings, entry db.WordEntry) vocab.Card
}

// Dispatch sends the reminder of one user for the slot at hour on now's day.
// It returns how many messages were delivered. Users that are incomplete,
// have no words, are not due at hour, or were already served for this slot
// get nothing.
func (s *Scheduler) Dispatch(ctx context.Context, userID int64, hour int, now time.Time) (int, error) {
	if s.dispatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.dispatchTimeout)
		defer cancel()
	}

	settings, err := db.GetSettings(userID)
	if err != nil {
		if errors.Is(err, db.ErrSettingsNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load settings: %w", err)
	}
	if !settings.Complete() || !InCadence(settings.RemindersPerDay, hour) {
		return 0, nil
	}

	words, err := db.ListWords(userID)
	if err != nil {
		return 0, fmt.Errorf("load words: %w", err)
	}
	if len(words) == 0 {
		return 0, nil
	}

	batch := s.sample(words, settings.WordsPerReminder)
	ids := make([]uint, len(batch))
	for i, entry := range batch {
		ids[i] = entry.ID
	}

	slotAt := SlotTime(now, hour, s.location)
	runID := uuid.NewString()
	claimed, err := db.RecordDispatch(userID, slotAt, ids, runID)
	if err != nil {
		return 0, err
	}
	if !claimed {
		logger.Debug("reminder slot already dispatched", "user_id", userID, "slot_at", slotAt)
		return 0, nil
	}

	sent := 0
	for _, entry := range batch {
		if ctx.Err() != nil {
			logger.Warn("reminder dispatch interrupted", "user_id", userID, "run_id", runID, "error", ctx.Err())
			break
		}
		card := s.cards.CardFor(ctx, *settings, entry)
		if err := s.sender.SendText(ctx, userID, card.ReminderText()); err != nil {
			logger.Error("failed to send reminder", "user_id", userID, "word", entry.Word, "run_id", runID, "error", err)
			continue
		}
		sent++
	}
	if sent == 0 && ctx.Err() != nil {
		// Nothing reached the user; give the slot back so catch-up can retry it.
		logger.Warn("reminder dispatch sent nothing", "user_id", userID, "slot_at", slotAt, "run_id", runID, "sent", 0, "error", ctx.Err())
		if _, err := db.ReleaseDispatch(userID, slotAt, runID); err != nil {
			logger.Error("failed to release reminder slot", "user_id", userID, "run_id", runID, "error", err)
		}
		return 0, ctx.Err()
	}
	logger.Info("reminder dispatched", "user_id", userID, "slot_at", slotAt, "run_id", runID, "sent", sent)
	return sent, nil
}

// DispatchSlot runs Dispatch for every complete user due at hour, with at
// most the configured number of users in flight.
func (s *Scheduler) DispatchSlot(ctx context.Context, hour int, now time.Time) error {
	users, err := db.ListCompleteSettings()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, user := range users {
		if !InCadence(user.RemindersPerDay, hour) {
			continue
		}
		userID := user.UserID
		g.Go(func() error {
			if _, err := s.Dispatch(ctx, userID, hour, now); err != nil {
				logger.Error("reminder dispatch failed", "user_id", userID, "hour", hour, "error", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// sample picks min(n, len(words)) distinct entries.
func (s *Scheduler) sample(words []db.WordEntry, n int) []db.WordEntry {
	if n < 1 {
		n = 1
	}
	if n > len(words) {
		n = len(words)
	}
	s.randMu.Lock()
	perm := s.rand.Perm(len(words))
	s.randMu.Unlock()

	out := make([]db.WordEntry, n)
	for i := 0; i < n; i++ {
		out[i] = words[perm[i]]
	}
	return out
}
