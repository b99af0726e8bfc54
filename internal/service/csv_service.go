package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{"date", "amount", "category", "merchant", "note", "need"}

// ImportResult summarizes a CSV import run
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// CSVService imports and exports expenses as CSV
type CSVService struct {
	expenseRepo domain.ExpenseRepository
}

// NewCSVService creates a new CSVService
func NewCSVService(expenseRepo domain.ExpenseRepository) *CSVService {
	return &CSVService{expenseRepo: expenseRepo}
}

// Import reads expenses from CSV. The first row must be the header
// "date,amount,category,merchant,note,need". Rows that fail to parse or
// validate are skipped and counted rather than aborting the whole import.
func (s *CSVService) Import(userID uuid.UUID, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing CSV header", domain.ErrInvalidInput)
	}
	if err := validateCSVHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		expense, err := parseCSVRecord(userID, record)
		if err != nil {
			log.Debug().Int("line", line).Err(err).Msg("skipping CSV row")
			result.Skipped++
			continue
		}

		if _, err := s.expenseRepo.Create(expense); err != nil {
			return nil, err
		}
		result.Imported++
	}

	return result, nil
}

// Export writes the user's expenses as CSV, optionally limited to one month
func (s *CSVService) Export(userID uuid.UUID, month *util.Month, w io.Writer) error {
	var (
		expenses []*domain.Expense
		err      error
	)
	if month != nil {
		start, end := month.Bounds()
		expenses, err = s.expenseRepo.GetByDateRange(userID, start, end)
	} else {
		expenses, err = s.expenseRepo.GetAllByUser(userID)
	}
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, exp := range expenses {
		note := ""
		if exp.Note != nil {
			note = *exp.Note
		}
		need := "want"
		if exp.IsNeed {
			need = "need"
		}
		record := []string{
			exp.Date.Format("2006-01-02"),
			exp.Amount.StringFixed(2),
			exp.Category,
			exp.Merchant,
			note,
			need,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportFilename builds the download filename for an export
func ExportFilename(month *util.Month, now time.Time) string {
	if month != nil {
		return fmt.Sprintf("expenses_%s_%s.csv", month.String(), now.Format("20060102150405"))
	}
	return fmt.Sprintf("expenses_%s.csv", now.Format("20060102150405"))
}

func validateCSVHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("%w: expected CSV header %q", domain.ErrInvalidInput, strings.Join(csvHeader, ","))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != csvHeader[i] {
			return fmt.Errorf("%w: expected CSV header %q", domain.ErrInvalidInput, strings.Join(csvHeader, ","))
		}
	}
	return nil
}

func parseCSVRecord(userID uuid.UUID, record []string) (*domain.Expense, error) {
	if len(record) != len(csvHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(record))
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", record[0])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", record[1])
	}

	var note *string
	if trimmed := strings.TrimSpace(record[4]); trimmed != "" {
		note = &trimmed
	}

	var isNeed bool
	switch strings.ToLower(strings.TrimSpace(record[5])) {
	case "need", "true", "1":
		isNeed = true
	}

	expense := &domain.Expense{
		UserID:   userID,
		Date:     date,
		Amount:   amount,
		Category: strings.TrimSpace(record[2]),
		Merchant: strings.TrimSpace(record[3]),
		Note:     note,
		IsNeed:   isNeed,
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	return expense, nil
}
