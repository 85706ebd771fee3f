package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindWord returns nil without an error when the user has no such word.
func FindWord(userID int64, word string) (*WordEntry, error) {
	var entry WordEntry
	err := DB.Where("user_id = ? AND word = ?", userID, word).First(&entry).Error
	if err == nil {
		return &entry, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// InsertWord stores entry unless the (user, word) pair already exists. It
// reports whether a row was created.
func InsertWord(entry *WordEntry) (bool, error) {
	res := DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "word"}},
		DoNothing: true,
	}).Create(entry)
	if res.Error != nil {
		return false, fmt.Errorf("insert word: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// InsertWords stores entries in one transaction, skipping words the user
// already has, and returns how many were created.
func InsertWords(entries []WordEntry) (int, error) {
	inserted := 0
	err := DB.Transaction(func(tx *gorm.DB) error {
		for i := range entries {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "word"}},
				DoNothing: true,
			}).Create(&entries[i])
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert words: %w", err)
	}
	return inserted, nil
}

func DeleteWord(userID int64, word string) (bool, error) {
	res := DB.Where("user_id = ? AND word = ?", userID, word).Delete(&WordEntry{})
	if res.Error != nil {
		return false, fmt.Errorf("delete word: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func DeleteAllWords(userID int64) (int64, error) {
	res := DB.Where("user_id = ?", userID).Delete(&WordEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete words: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func ListWords(userID int64) ([]WordEntry, error) {
	var entries []WordEntry
	if err := DB.Where("user_id = ?", userID).Order("word ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
