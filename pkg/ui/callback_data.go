package ui

import (
	"errors"
	"strings"

	"github.com/smith3v/tg-phrase-reminder/pkg/wizard"
)

const (
	CallbackPrefix     = "w:"
	MaxCallbackDataLen = 64
)

// Action is a decoded wizard answer button.
type Action struct {
	Step  wizard.Step
	Value string
}

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errInvalidStep         = errors.New("invalid callback step")
	errInvalidValue        = errors.New("invalid callback value")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func IsWizardCallback(data string) bool {
	return strings.HasPrefix(data, CallbackPrefix)
}

func BuildAnswerCallback(step wizard.Step, value string) (string, error) {
	if _, err := parseStep(string(step)); err != nil {
		return "", err
	}
	if !isValidValue(value) {
		return "", errInvalidValue
	}
	data := CallbackPrefix + string(step) + ":" + value
	return validateCallbackData(data)
}

// ParseCallbackData decodes w:<step>:<value>. It checks the shape only;
// whether the value is an option of the step is decided by the wizard.
func ParseCallbackData(data string) (Action, error) {
	data, err := validateCallbackData(data)
	if err != nil {
		return Action{}, err
	}
	if !IsWizardCallback(data) {
		return Action{}, errInvalidPrefix
	}

	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "w" {
		return Action{}, errInvalidAction
	}
	step, err := parseStep(parts[1])
	if err != nil {
		return Action{}, err
	}
	if !isValidValue(parts[2]) {
		return Action{}, errInvalidValue
	}
	return Action{Step: step, Value: parts[2]}, nil
}

func validateCallbackData(data string) (string, error) {
	if data == "" {
		return "", errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func parseStep(stepPart string) (wizard.Step, error) {
	for _, step := range wizard.Steps {
		if string(step) == stepPart {
			return step, nil
		}
	}
	return "", errInvalidStep
}

func isValidValue(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
