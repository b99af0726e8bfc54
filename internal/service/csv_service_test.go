package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestImport_Success(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	csvService := NewCSVService(expenseRepo)

	userID := uuid.New()
	input := strings.Join([]string{
		"date,amount,category,merchant,note,need",
		"2026-03-05,120.50,groceries,Grocer Bros,weekly shop,need",
		"2026-03-08,15.99,entertainment,StreamFlix,,want",
		"2026-03-10,9.00,transport,Metro,,1",
	}, "\n")

	result, err := csvService.Import(userID, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 3 {
		t.Errorf("Expected 3 imported, got %d", result.Imported)
	}
	if result.Skipped != 0 {
		t.Errorf("Expected 0 skipped, got %d", result.Skipped)
	}

	expenses, _ := expenseRepo.GetAllByUser(userID)
	if len(expenses) != 3 {
		t.Fatalf("Expected 3 stored expenses, got %d", len(expenses))
	}
	if !expenses[0].IsNeed {
		t.Error("Expected 'need' row to be a need")
	}
	if expenses[1].IsNeed {
		t.Error("Expected 'want' row to not be a need")
	}
	if !expenses[2].IsNeed {
		t.Error("Expected '1' row to be a need")
	}
	if expenses[1].Note != nil {
		t.Error("Expected empty note to be stored as nil")
	}
	if !expenses[0].Amount.Equal(decimal.NewFromFloat(120.50)) {
		t.Errorf("Expected amount 120.50, got %s", expenses[0].Amount)
	}
}

func TestImport_SkipsBadRows(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	csvService := NewCSVService(expenseRepo)

	userID := uuid.New()
	input := strings.Join([]string{
		"date,amount,category,merchant,note,need",
		"2026-03-05,120.50,groceries,Grocer Bros,,need",
		"not-a-date,10.00,groceries,Grocer Bros,,want",
		"2026-03-06,not-a-number,groceries,Grocer Bros,,want",
		"2026-03-07,-5.00,groceries,Grocer Bros,,want",
		"2026-03-08,10.00,,Grocer Bros,,want",
		"2026-03-09,10.00,groceries,Metro,,want",
	}, "\n")

	result, err := csvService.Import(userID, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if result.Skipped != 4 {
		t.Errorf("Expected 4 skipped, got %d", result.Skipped)
	}
}

func TestImport_BadHeader(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	csvService := NewCSVService(expenseRepo)

	_, err := csvService.Import(uuid.New(), strings.NewReader("foo,bar\n1,2\n"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for bad header, got %v", err)
	}

	_, err = csvService.Import(uuid.New(), strings.NewReader(""))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty file, got %v", err)
	}
}

func TestExport(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	csvService := NewCSVService(expenseRepo)

	userID := uuid.New()
	note := "weekly shop"
	expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromFloat(120.5),
		Category: "groceries",
		Merchant: "Grocer Bros",
		Note:     &note,
		IsNeed:   true,
	})
	expenseRepo.AddExpense(&domain.Expense{
		UserID:   userID,
		Date:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(60),
		Category: "entertainment",
		Merchant: "CineMax",
		IsNeed:   false,
	})

	var buf bytes.Buffer
	march := mustMonth(t, "2026-03")
	if err := csvService.Export(userID, &march, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Expected valid CSV, got %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "date,amount,category,merchant,note,need" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	row := records[1]
	if row[0] != "2026-03-05" || row[1] != "120.50" || row[3] != "Grocer Bros" || row[5] != "need" {
		t.Errorf("Unexpected row: %v", row)
	}

	// Unfiltered export includes both rows
	buf.Reset()
	if err := csvService.Export(userID, nil, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	records, _ = csv.NewReader(&buf).ReadAll()
	if len(records) != 3 {
		t.Errorf("Expected header plus 2 rows, got %d records", len(records))
	}
	if records[2][5] != "want" {
		t.Errorf("Expected want marker for discretionary row, got %v", records[2])
	}
}

func TestImport_ExportRoundTrip(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	csvService := NewCSVService(expenseRepo)

	userID := uuid.New()
	input := "date,amount,category,merchant,note,need\n2026-03-05,42.00,groceries,Grocer Bros,weekly,need\n"

	if _, err := csvService.Import(userID, strings.NewReader(input)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var buf bytes.Buffer
	if err := csvService.Export(userID, nil, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if buf.String() != input {
		t.Errorf("Expected round trip to preserve the file.\ngot:  %q\nwant: %q", buf.String(), input)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 20, 14, 30, 5, 0, time.UTC)

	march := mustMonth(t, "2026-03")
	if got := ExportFilename(&march, now); got != "expenses_2026-03_20260320143005.csv" {
		t.Errorf("Unexpected filename: %s", got)
	}
	if got := ExportFilename(nil, now); got != "expenses_20260320143005.csv" {
		t.Errorf("Unexpected filename: %s", got)
	}
}
