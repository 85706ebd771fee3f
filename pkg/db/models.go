// pkg/db/models.go
package db

import (
	"time"

	"gorm.io/datatypes"
)

// WizardComplete is the wizard_step value of a fully configured user.
const WizardComplete = "complete"

type UserSettings struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           int64  `gorm:"not null;uniqueIndex"`
	TranslateWord    bool   `gorm:"not null;default:false"`
	RemindersPerDay  int    `gorm:"not null;default:1"`
	WordsPerReminder int    `gorm:"not null;default:1"`
	PhraseCategory   string `gorm:"not null;default:Any"`
	TranslatePhrase  bool   `gorm:"not null;default:false"`
	WizardStep       string `gorm:"not null;default:translate_word;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Complete reports whether the user finished the settings wizard. Incomplete
// records never receive reminders.
func (s UserSettings) Complete() bool {
	return s.WizardStep == WizardComplete
}

// WordEntry is a word a user is learning. Cached fields are filled when the
// word is added and left empty when the lookup was disabled or failed.
type WordEntry struct {
	ID                uint   `gorm:"primaryKey"`
	UserID            int64  `gorm:"not null;uniqueIndex:idx_user_word"`
	Word              string `gorm:"not null;uniqueIndex:idx_user_word"`
	Translation       string `gorm:"not null;default:''"`
	ExamplePhrase     string `gorm:"not null;default:''"`
	ExampleSource     string `gorm:"not null;default:''"`
	ExampleCategory   string `gorm:"not null;default:''"`
	PhraseTranslation string `gorm:"not null;default:''"`
	CreatedAt         time.Time
}

type ReminderDispatch struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    int64          `gorm:"not null;uniqueIndex:idx_dispatch_user_slot"`
	SlotAt    time.Time      `gorm:"not null;uniqueIndex:idx_dispatch_user_slot"`
	WordIDs   datatypes.JSON `gorm:"not null"`
	RunID     string         `gorm:"not null;size:36"`
	CreatedAt time.Time
}

// Models lists every table managed by AutoMigrate.
func Models() []any {
	return []any{&UserSettings{}, &WordEntry{}, &ReminderDispatch{}}
}
