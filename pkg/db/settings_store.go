package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingsNotFound = errors.New("settings not found")

var wizardColumns = []string{
	"translate_word",
	"reminders_per_day",
	"words_per_reminder",
	"phrase_category",
	"translate_phrase",
	"wizard_step",
	"updated_at",
}

func GetSettings(userID int64) (*UserSettings, error) {
	var settings UserSettings
	if err := DB.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// ResetSettings creates the user's record or overwrites every wizard column
// of an existing one with the given values in a single statement.
func ResetSettings(settings UserSettings) (*UserSettings, error) {
	row := settings
	row.ID = 0
	err := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(wizardColumns),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("reset settings: %w", err)
	}
	return GetSettings(settings.UserID)
}

// AdvanceSettings stores next only if the persisted wizard step still equals
// expectedStep. It reports false when another answer got there first.
func AdvanceSettings(expectedStep string, next UserSettings) (bool, error) {
	res := DB.Model(&UserSettings{}).
		Where("user_id = ? AND wizard_step = ?", next.UserID, expectedStep).
		Updates(map[string]any{
			"translate_word":     next.TranslateWord,
			"reminders_per_day":  next.RemindersPerDay,
			"words_per_reminder": next.WordsPerReminder,
			"phrase_category":    next.PhraseCategory,
			"translate_phrase":   next.TranslatePhrase,
			"wizard_step":        next.WizardStep,
		})
	if res.Error != nil {
		return false, fmt.Errorf("advance settings: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func ListCompleteSettings() ([]UserSettings, error) {
	var users []UserSettings
	if err := DB.Where("wizard_step = ?", WizardComplete).Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
