package importexport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/smith3v/tg-phrase-reminder/pkg/vocab"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const maxDelimiterSampleRecords = 20

// ParseWordsCSV reads words from the first column and an optional translation
// from the second. It returns the rows it could use and how many it skipped.
func ParseWordsCSV(data []byte) ([]vocab.ImportItem, int, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	delimiter := detectCSVDelimiter(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var items []vocab.ImportItem
	skipped := 0
	checkedHeader := false

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		if isEmptyCSVRecord(record) {
			skipped++
			continue
		}
		if !checkedHeader {
			checkedHeader = true
			if isHeaderRecord(record) {
				continue
			}
		}
		word := strings.TrimSpace(record[0])
		if word == "" {
			skipped++
			continue
		}
		item := vocab.ImportItem{Word: word}
		if len(record) > 1 {
			item.Translation = strings.TrimSpace(record[1])
		}
		items = append(items, item)
	}

	return items, skipped, nil
}

// detectCSVDelimiter picks the candidate that splits the sample into the
// most records of one consistent width above one column.
func detectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', '\t', ';'}
	bestDelimiter := candidates[0]
	bestScore := -1

	for _, delimiter := range candidates {
		score, err := scoreDelimiter(data, delimiter, maxDelimiterSampleRecords)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestDelimiter = delimiter
		}
	}

	if bestScore <= 0 {
		return ','
	}
	return bestDelimiter
}

func scoreDelimiter(data []byte, delimiter rune, maxRecords int) (int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	counts := make(map[int]int)
	recordsSeen := 0

	for recordsSeen < maxRecords {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		if isEmptyCSVRecord(record) {
			continue
		}
		recordsSeen++

		if len(record) < 2 {
			continue
		}
		counts[len(record)]++
	}

	best := 0
	for _, score := range counts {
		if score > best {
			best = score
		}
	}
	return best, nil
}

func isEmptyCSVRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func isHeaderRecord(record []string) bool {
	first := strings.ToLower(strings.TrimSpace(record[0]))
	if first != "word" && first != "words" {
		return false
	}
	if len(record) < 2 {
		return true
	}
	second := strings.ToLower(strings.TrimSpace(record[1]))
	return second == "" || second == "translation"
}
