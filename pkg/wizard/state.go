// Package wizard drives the five-question settings dialog. The cursor lives in
// the wizard_step column of the user's settings row.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
)

type Step string

const (
	StepTranslateWord    Step = "translate_word"
	StepRemindersPerDay  Step = "reminders_per_day"
	StepWordsPerReminder Step = "words_per_reminder"
	StepPhraseCategory   Step = "phrase_category"
	StepTranslatePhrase  Step = "translate_phrase"
	StepComplete         Step = db.WizardComplete
)

// Steps lists the question steps in the order they are asked.
var Steps = []Step{
	StepTranslateWord,
	StepRemindersPerDay,
	StepWordsPerReminder,
	StepPhraseCategory,
	StepTranslatePhrase,
}

type Effect int

const (
	// EffectAsk means the next question should be sent.
	EffectAsk Effect = iota + 1
	// EffectComplete means the settings are final and reminders should be armed.
	EffectComplete
)

var (
	ErrStaleAnswer   = errors.New("answer does not match the current wizard step")
	ErrInvalidOption = errors.New("answer is not an option of the current question")
)

type Option struct {
	Label string
	Value string
}

type Prompt struct {
	Step    Step
	Text    string
	Options []Option
}

// Input is a structured answer: the step it was offered for and the chosen value.
type Input struct {
	Step  Step
	Value string
}

type question struct {
	text    string
	options []Option
	apply   func(settings *db.UserSettings, value string)
}

var yesNo = []Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}

var questions = map[Step]question{
	StepTranslateWord: {
		text:    "Do you need translations of the words you add?",
		options: yesNo,
		apply: func(s *db.UserSettings, v string) {
			s.TranslateWord = v == "yes"
		},
	},
	StepRemindersPerDay: {
		text: "How often should I send reminders?",
		options: []Option{
			{Label: "Once a day", Value: "1"},
			{Label: "Twice a day", Value: "2"},
			{Label: "3 times a day", Value: "3"},
		},
		apply: func(s *db.UserSettings, v string) {
			s.RemindersPerDay, _ = strconv.Atoi(v)
		},
	},
	StepWordsPerReminder: {
		text: "How many words should one reminder contain?",
		options: []Option{
			{Label: "1", Value: "1"},
			{Label: "2", Value: "2"},
			{Label: "3", Value: "3"},
			{Label: "5", Value: "5"},
		},
		apply: func(s *db.UserSettings, v string) {
			s.WordsPerReminder, _ = strconv.Atoi(v)
		},
	},
	StepPhraseCategory: {
		text: "Where should example phrases come from?",
		options: []Option{
			{Label: "Aphorisms", Value: "Aphorisms"},
			{Label: "Quotes", Value: "Quotes"},
			{Label: "Movies", Value: "Movies"},
			{Label: "Songs", Value: "Songs"},
			{Label: "Any topic", Value: "Any"},
		},
		apply: func(s *db.UserSettings, v string) {
			s.PhraseCategory = v
		},
	},
	StepTranslatePhrase: {
		text:    "Do you need translations of the example phrases?",
		options: yesNo,
		apply: func(s *db.UserSettings, v string) {
			s.TranslatePhrase = v == "yes"
		},
	},
}

// Defaults returns the settings a user has right after Begin or Reset.
func Defaults(userID int64) db.UserSettings {
	return db.UserSettings{
		UserID:           userID,
		TranslateWord:    false,
		RemindersPerDay:  1,
		WordsPerReminder: 1,
		PhraseCategory:   "Any",
		TranslatePhrase:  false,
		WizardStep:       string(StepTranslateWord),
	}
}

// PromptFor returns the question for step. Complete and unknown steps have none.
func PromptFor(step Step) (Prompt, bool) {
	q, ok := questions[step]
	if !ok {
		return Prompt{}, false
	}
	options := make([]Option, len(q.options))
	copy(options, q.options)
	return Prompt{Step: step, Text: q.text, Options: options}, true
}

// Transition applies in to settings. It never mutates its argument; on error
// the returned settings equal the input.
func Transition(settings db.UserSettings, in Input) (db.UserSettings, Effect, error) {
	current := Step(settings.WizardStep)
	if current == StepComplete || in.Step != current {
		return settings, 0, ErrStaleAnswer
	}
	q, ok := questions[current]
	if !ok {
		return settings, 0, ErrStaleAnswer
	}
	if !hasOption(q.options, in.Value) {
		return settings, 0, ErrInvalidOption
	}

	next := settings
	q.apply(&next, in.Value)
	next.WizardStep = string(nextStep(current))
	if Step(next.WizardStep) == StepComplete {
		return next, EffectComplete, nil
	}
	return next, EffectAsk, nil
}

func nextStep(step Step) Step {
	for i, s := range Steps {
		if s == step && i+1 < len(Steps) {
			return Steps[i+1]
		}
	}
	return StepComplete
}

func hasOption(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func labelFor(step Step, value string) string {
	for _, opt := range questions[step].options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

func yesNoValue(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Summary renders the completion acknowledgement with the five chosen values.
func Summary(settings db.UserSettings) string {
	var b strings.Builder
	b.WriteString("Setup complete ✅\n\n")
	fmt.Fprintf(&b, "Word translation: %s\n", labelFor(StepTranslateWord, yesNoValue(settings.TranslateWord)))
	fmt.Fprintf(&b, "Reminders: %s\n", labelFor(StepRemindersPerDay, strconv.Itoa(settings.RemindersPerDay)))
	fmt.Fprintf(&b, "Words per reminder: %s\n", labelFor(StepWordsPerReminder, strconv.Itoa(settings.WordsPerReminder)))
	fmt.Fprintf(&b, "Phrase source: %s\n", labelFor(StepPhraseCategory, settings.PhraseCategory))
	fmt.Fprintf(&b, "Phrase translation: %s\n\n", labelFor(StepTranslatePhrase, yesNoValue(settings.TranslatePhrase)))
	b.WriteString("Send me any word to add it. Use /menu to change these settings.")
	return b.String()
}
