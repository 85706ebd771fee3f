package wizard

import (
	"testing"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionWalksAllSteps(t *testing.T) {
	settings := Defaults(1)
	answers := []Input{
		{Step: StepTranslateWord, Value: "yes"},
		{Step: StepRemindersPerDay, Value: "2"},
		{Step: StepWordsPerReminder, Value: "3"},
		{Step: StepPhraseCategory, Value: "Movies"},
		{Step: StepTranslatePhrase, Value: "no"},
	}

	for i, in := range answers {
		next, effect, err := Transition(settings, in)
		require.NoError(t, err, "answer %d", i)
		if i < len(answers)-1 {
			assert.Equal(t, EffectAsk, effect)
			assert.Equal(t, string(answers[i+1].Step), next.WizardStep)
		} else {
			assert.Equal(t, EffectComplete, effect)
		}
		settings = next
	}

	assert.True(t, settings.Complete())
	assert.True(t, settings.TranslateWord)
	assert.Equal(t, 2, settings.RemindersPerDay)
	assert.Equal(t, 3, settings.WordsPerReminder)
	assert.Equal(t, "Movies", settings.PhraseCategory)
	assert.False(t, settings.TranslatePhrase)
}

func TestTransitionRejectsStaleStep(t *testing.T) {
	settings := Defaults(1)
	settings.WizardStep = string(StepWordsPerReminder)

	next, effect, err := Transition(settings, Input{Step: StepTranslateWord, Value: "yes"})

	require.ErrorIs(t, err, ErrStaleAnswer)
	assert.Zero(t, effect)
	assert.Equal(t, settings, next)
}

func TestTransitionRejectsAnswersAfterCompletion(t *testing.T) {
	settings := Defaults(1)
	settings.WizardStep = db.WizardComplete

	_, _, err := Transition(settings, Input{Step: StepComplete, Value: "yes"})

	require.ErrorIs(t, err, ErrStaleAnswer)
}

func TestTransitionRejectsInvalidOption(t *testing.T) {
	cases := []Input{
		{Step: StepTranslateWord, Value: "maybe"},
		{Step: StepTranslateWord, Value: ""},
		{Step: StepTranslateWord, Value: "YES"},
	}
	for _, in := range cases {
		settings := Defaults(1)
		next, _, err := Transition(settings, in)
		require.ErrorIs(t, err, ErrInvalidOption, "value %q", in.Value)
		assert.Equal(t, settings, next)
	}

	settings := Defaults(1)
	settings.WizardStep = string(StepWordsPerReminder)
	_, _, err := Transition(settings, Input{Step: StepWordsPerReminder, Value: "4"})
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestPromptForEveryStep(t *testing.T) {
	sizes := map[Step]int{
		StepTranslateWord:    2,
		StepRemindersPerDay:  3,
		StepWordsPerReminder: 4,
		StepPhraseCategory:   5,
		StepTranslatePhrase:  2,
	}
	for _, step := range Steps {
		prompt, ok := PromptFor(step)
		require.True(t, ok, "step %s", step)
		assert.NotEmpty(t, prompt.Text)
		assert.Len(t, prompt.Options, sizes[step])
		assert.Equal(t, step, prompt.Step)
	}

	_, ok := PromptFor(StepComplete)
	assert.False(t, ok)
}

func TestPromptOptionsAreCopies(t *testing.T) {
	prompt, _ := PromptFor(StepTranslateWord)
	prompt.Options[0].Value = "tampered"

	again, _ := PromptFor(StepTranslateWord)
	assert.Equal(t, "yes", again.Options[0].Value)
}

func TestSummaryListsChoices(t *testing.T) {
	settings := db.UserSettings{
		TranslateWord:    true,
		RemindersPerDay:  3,
		WordsPerReminder: 5,
		PhraseCategory:   "Any",
		TranslatePhrase:  false,
		WizardStep:       db.WizardComplete,
	}

	text := Summary(settings)

	assert.Contains(t, text, "Word translation: Yes")
	assert.Contains(t, text, "Reminders: 3 times a day")
	assert.Contains(t, text, "Words per reminder: 5")
	assert.Contains(t, text, "Phrase source: Any topic")
	assert.Contains(t, text, "Phrase translation: No")
	assert.Contains(t, text, "/menu")
}
