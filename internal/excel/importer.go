package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabkeep/internal/database"
	"github.com/example/vocabkeep/internal/review"
	"github.com/example/vocabkeep/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	ExampleColumn     string // Column with the example sentence
	CategoryColumn    string // Column with the category
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		ExampleColumn:     "C",
		CategoryColumn:    "D",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// Result holds the outcome of an import operation
type Result struct {
	TotalProcessed int
	Created        int
	Updated        int
	Errors         []string
}

// Importer bulk-loads vocabulary through the review service, so every
// created or edited word is credited to the daily ledger with the usual
// per-word dedup.
type Importer struct {
	service *review.Service
	words   *database.WordRepository
}

// New creates an importer
func New(db *database.DB, service *review.Service) *Importer {
	return &Importer{
		service: service,
		words:   database.NewWordRepository(db),
	}
}

// ImportFile imports words from an Excel or CSV file
func (im *Importer) ImportFile(ctx context.Context, config ImportConfig) (*Result, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

// importFromExcel imports words from an Excel file
func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*Result, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &Result{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := im.processRow(ctx, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file using the same column order
// as the Excel path (word, translation, example, category)
func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*Result, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &Result{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := im.processRow(ctx, row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow extracts cell values and upserts one word
func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *Result) error {
	var word, translation, example, category string

	if colIdx := columnToIndex(config.WordColumn); colIdx >= 0 && colIdx < len(row) {
		word = row[colIdx]
	}
	if colIdx := columnToIndex(config.TranslationColumn); colIdx >= 0 && colIdx < len(row) {
		translation = row[colIdx]
	}
	if colIdx := columnToIndex(config.ExampleColumn); colIdx >= 0 && colIdx < len(row) {
		example = row[colIdx]
	}
	if colIdx := columnToIndex(config.CategoryColumn); colIdx >= 0 && colIdx < len(row) {
		category = row[colIdx]
	}

	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	example = strings.TrimSpace(example)
	category = strings.TrimSpace(category)

	if word == "" {
		return fmt.Errorf("word cannot be empty")
	}
	if translation == "" {
		return fmt.Errorf("translation cannot be empty")
	}
	if category == "" {
		category = "Uncategorized"
	}

	// Check for an existing word in the same category
	existing, err := im.words.Search(ctx, word)
	if err != nil {
		return fmt.Errorf("failed to search for existing words: %v", err)
	}

	for i := range existing {
		if strings.EqualFold(existing[i].Word, word) && existing[i].Category == category {
			existing[i].Translation = translation
			existing[i].ExampleSentence = example

			if err := im.service.EditWord(ctx, &existing[i]); err != nil {
				return fmt.Errorf("failed to update word: %v", err)
			}
			result.Updated++
			return nil
		}
	}

	newWord := &models.Word{
		Word:            word,
		Translation:     translation,
		ExampleSentence: example,
		Category:        category,
	}
	if err := im.service.AddWord(ctx, newWord); err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	result.Created++
	return nil
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
