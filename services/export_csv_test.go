package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"boqworks/boq"
)

func TestGenerateCSV_InternalView(t *testing.T) {
	data := exportDataFixture(t, boq.ViewInternal)

	result, err := GenerateCSV(data)
	if err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	reader := csv.NewReader(bytes.NewReader(result))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("result is not valid CSV: %v", err)
	}

	if records[0][0] != "Title" || records[0][1] != "Civil Works Phase 1" {
		t.Errorf("first record = %v, want title line", records[0])
	}

	var foundOverhead, foundGrandTotal bool
	for _, rec := range records {
		for _, field := range rec {
			if strings.Contains(field, "Overhead") {
				foundOverhead = true
			}
			if field == "Grand Total" {
				foundGrandTotal = true
			}
		}
	}
	if !foundOverhead {
		t.Error("internal CSV missing overhead line")
	}
	if !foundGrandTotal {
		t.Error("CSV missing grand total line")
	}
}

func TestGenerateCSV_ClientViewHidesMarkup(t *testing.T) {
	data := exportDataFixture(t, boq.ViewClient)

	result, err := GenerateCSV(data)
	if err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	text := string(result)
	if strings.Contains(text, "Profit Margin") {
		t.Error("client CSV leaked profit margin")
	}
	if !strings.Contains(text, "Grand Total") {
		t.Error("client CSV missing grand total")
	}
}

func TestGenerateCSV_TotalsMatchAcrossViews(t *testing.T) {
	internal := exportDataFixture(t, boq.ViewInternal)
	client := exportDataFixture(t, boq.ViewClient)

	internalCSV, err := GenerateCSV(internal)
	if err != nil {
		t.Fatalf("GenerateCSV(internal) error = %v", err)
	}
	clientCSV, err := GenerateCSV(client)
	if err != nil {
		t.Fatalf("GenerateCSV(client) error = %v", err)
	}

	grandTotal := func(raw []byte) string {
		reader := csv.NewReader(bytes.NewReader(raw))
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			t.Fatalf("parse csv: %v", err)
		}
		for _, rec := range records {
			if len(rec) >= 6 && rec[1] == "Grand Total" {
				return rec[5]
			}
		}
		t.Fatal("grand total line not found")
		return ""
	}

	if got, want := grandTotal(internalCSV), grandTotal(clientCSV); got != want {
		t.Errorf("grand totals diverge between formats: internal %q, client %q", got, want)
	}
}
