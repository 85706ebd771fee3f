package db

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

const DefaultDispatchLogRetention = 30 * 24 * time.Hour

// RecordDispatch claims the (user, slot) pair for one reminder run. It
// reports false when the slot was already claimed, in which case nothing must
// be sent.
func RecordDispatch(userID int64, slotAt time.Time, wordIDs []uint, runID string) (bool, error) {
	if wordIDs == nil {
		wordIDs = []uint{}
	}
	raw, err := json.Marshal(wordIDs)
	if err != nil {
		return false, err
	}
	row := ReminderDispatch{
		UserID:  userID,
		SlotAt:  slotAt.UTC(),
		WordIDs: datatypes.JSON(raw),
		RunID:   runID,
	}
	res := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "slot_at"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("record dispatch: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReleaseDispatch drops the claim made by runID so the slot can be sent
// again. Claims of other runs are left alone.
func ReleaseDispatch(userID int64, slotAt time.Time, runID string) (bool, error) {
	res := DB.Where("user_id = ? AND slot_at = ? AND run_id = ?", userID, slotAt.UTC(), runID).
		Delete(&ReminderDispatch{})
	if res.Error != nil {
		return false, fmt.Errorf("release dispatch: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func PruneDispatches(before time.Time) (int64, error) {
	if DB == nil {
		return 0, nil
	}
	res := DB.Where("slot_at < ?", before.UTC()).Delete(&ReminderDispatch{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
