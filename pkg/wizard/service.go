package wizard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
)

// userLocks serializes wizard operations per user within the process. The
// conditional update in db.AdvanceSettings covers other processes.
var userLocks sync.Map

func lockUser(userID int64) func() {
	value, _ := userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

type Result struct {
	Settings db.UserSettings
	Effect   Effect
	// Prompt is the next question when Effect is EffectAsk.
	Prompt Prompt
}

// Begin stores default settings with the cursor at the first question and
// returns that question. Calling it again from any state has the same effect.
func Begin(userID int64) (Prompt, error) {
	unlock := lockUser(userID)
	defer unlock()

	if _, err := db.ResetSettings(Defaults(userID)); err != nil {
		return Prompt{}, fmt.Errorf("begin wizard: %w", err)
	}
	prompt, _ := PromptFor(Steps[0])
	return prompt, nil
}

// Reset is Begin under the name the /menu command uses.
func Reset(userID int64) (Prompt, error) {
	return Begin(userID)
}

// Answer applies a structured answer for the user. ErrStaleAnswer and
// ErrInvalidOption leave the stored settings unchanged.
func Answer(userID int64, step Step, value string) (Result, error) {
	unlock := lockUser(userID)
	defer unlock()

	settings, err := db.GetSettings(userID)
	if err != nil {
		if errors.Is(err, db.ErrSettingsNotFound) {
			return Result{}, ErrStaleAnswer
		}
		return Result{}, fmt.Errorf("load settings: %w", err)
	}

	next, effect, err := Transition(*settings, Input{Step: step, Value: value})
	if err != nil {
		return Result{Settings: *settings}, err
	}

	ok, err := db.AdvanceSettings(string(step), next)
	if err != nil {
		return Result{Settings: *settings}, err
	}
	if !ok {
		return Result{Settings: *settings}, ErrStaleAnswer
	}

	result := Result{Settings: next, Effect: effect}
	if effect == EffectAsk {
		result.Prompt, _ = PromptFor(Step(next.WizardStep))
	}
	return result, nil
}

// Current returns the stored settings, or db.ErrSettingsNotFound for a user
// who never started the wizard.
func Current(userID int64) (*db.UserSettings, error) {
	return db.GetSettings(userID)
}

// CurrentPrompt returns the question the user still has to answer, if any.
func CurrentPrompt(settings db.UserSettings) (Prompt, bool) {
	return PromptFor(Step(settings.WizardStep))
}
