package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"github.com/smith3v/tg-phrase-reminder/pkg/phrases"
	"github.com/smith3v/tg-phrase-reminder/pkg/translate"
)

type Service struct {
	phrases    phrases.Provider
	translator translate.Provider
}

func NewService(phraseProvider phrases.Provider, translator translate.Provider) *Service {
	if translator == nil {
		translator = translate.Disabled{}
	}
	return &Service{phrases: phraseProvider, translator: translator}
}

type SubmitStatus int

const (
	StatusAdded SubmitStatus = iota + 1
	StatusAlreadyKnown
)

type SubmitResult struct {
	Status SubmitStatus
	Word   string
	// Card is filled only for StatusAdded.
	Card Card
}

// Submit adds a word for the user. A word the user already has is left as is
// and reported as StatusAlreadyKnown. A missing example is not an error.
func (s *Service) Submit(ctx context.Context, settings db.UserSettings, input string) (SubmitResult, error) {
	word, err := Normalize(input)
	if err != nil {
		return SubmitResult{}, err
	}

	existing, err := db.FindWord(settings.UserID, word)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("find word: %w", err)
	}
	if existing != nil {
		return SubmitResult{Status: StatusAlreadyKnown, Word: word}, nil
	}

	card := s.compose(ctx, settings, word)
	entry := card.entry(settings.UserID)
	created, err := db.InsertWord(&entry)
	if err != nil {
		return SubmitResult{}, err
	}
	if !created {
		return SubmitResult{Status: StatusAlreadyKnown, Word: word}, nil
	}
	return SubmitResult{Status: StatusAdded, Word: word, Card: card}, nil
}

// Delete removes exactly the normalized word, or returns ErrNotFound.
func (s *Service) Delete(userID int64, input string) (string, error) {
	word, err := Normalize(input)
	if err != nil {
		return "", err
	}
	deleted, err := db.DeleteWord(userID, word)
	if err != nil {
		return word, err
	}
	if !deleted {
		return word, ErrNotFound
	}
	return word, nil
}

func (s *Service) List(userID int64) ([]db.WordEntry, error) {
	return db.ListWords(userID)
}

func (s *Service) Clear(userID int64) (int64, error) {
	return db.DeleteAllWords(userID)
}

// ImportItem is one word read from an uploaded file.
type ImportItem struct {
	Word        string
	Translation string
}

type ImportResult struct {
	Added int
	// Known counts words the user already had.
	Known int
	// Duplicates counts repeats of a word within the same import.
	Duplicates int
	Invalid    int
}

// Import stores words in bulk without looking up examples; they are resolved
// when the word is first reminded.
func (s *Service) Import(userID int64, items []ImportItem) (ImportResult, error) {
	var result ImportResult
	seen := make(map[string]struct{}, len(items))
	entries := make([]db.WordEntry, 0, len(items))
	for _, item := range items {
		word, err := Normalize(item.Word)
		if err != nil {
			if errors.Is(err, ErrEmptyWord) || errors.Is(err, ErrWordTooLong) {
				result.Invalid++
				continue
			}
			return ImportResult{}, err
		}
		if _, dup := seen[word]; dup {
			result.Duplicates++
			continue
		}
		seen[word] = struct{}{}
		entries = append(entries, db.WordEntry{UserID: userID, Word: word, Translation: item.Translation})
	}
	if len(entries) == 0 {
		return result, nil
	}

	added, err := db.InsertWords(entries)
	if err != nil {
		return ImportResult{}, err
	}
	result.Added = added
	result.Known = len(entries) - added
	return result, nil
}
