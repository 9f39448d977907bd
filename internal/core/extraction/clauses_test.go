package extraction

import (
	"strings"
	"testing"
)

func TestExtractClausesPaymentTerms(t *testing.T) {
	text := "Payment is due within 30 days of invoice receipt."
	clauses := ExtractClauses(text)
	if len(clauses.PaymentTerms) != 1 {
		t.Fatalf("expected one payment span, got %v", clauses.PaymentTerms)
	}
	if !strings.HasPrefix(clauses.PaymentTerms[0], "Payment is due") {
		t.Fatalf("unexpected span: %q", clauses.PaymentTerms[0])
	}
}

func TestExtractClausesEmptyCategoriesAreNonNil(t *testing.T) {
	clauses := ExtractClauses("nothing of interest here")
	for name, spans := range map[string][]string{
		"paymentTerms":         clauses.PaymentTerms,
		"termination":          clauses.Termination,
		"liability":            clauses.Liability,
		"intellectualProperty": clauses.IntellectualProperty,
		"autoRenewal":          clauses.AutoRenewal,
		"governingLaw":         clauses.GoverningLaw,
		"insurance":            clauses.Insurance,
		"dates":                clauses.Dates,
	} {
		if spans == nil {
			t.Fatalf("category %s is nil", name)
		}
		if len(spans) != 0 {
			t.Fatalf("category %s expected empty, got %v", name, spans)
		}
	}
}

func TestExtractClausesMultipleNonOverlappingSpans(t *testing.T) {
	span := strings.Repeat("x", 210)
	text := "Termination " + span + " termination for convenience."
	clauses := ExtractClauses(text)
	if len(clauses.Termination) != 2 {
		t.Fatalf("expected two termination spans, got %d", len(clauses.Termination))
	}
	// Spans are bounded: keyword plus at most 200 trailing characters.
	if len(clauses.Termination[0]) > len("Termination")+200 {
		t.Fatalf("span exceeds bound: %d chars", len(clauses.Termination[0]))
	}
}

func TestExtractClausesRepeatedSpansNotDeduplicated(t *testing.T) {
	text := "Insurance required. Insurance required."
	clauses := ExtractClauses(text)
	if len(clauses.Insurance) != 2 {
		t.Fatalf("expected duplicate insurance spans kept, got %v", clauses.Insurance)
	}
}

func TestExtractClausesDatesDeduplicatedInFirstSeenOrder(t *testing.T) {
	text := "Effective 01/15/2024, renews January 1, 2025, expires 01/15/2024."
	clauses := ExtractClauses(text)
	if len(clauses.Dates) != 2 {
		t.Fatalf("expected two unique dates, got %v", clauses.Dates)
	}
	if clauses.Dates[0] != "01/15/2024" || clauses.Dates[1] != "January 1, 2025" {
		t.Fatalf("unexpected date order: %v", clauses.Dates)
	}
}

func TestExtractClausesNoLiteralDate(t *testing.T) {
	clauses := ExtractClauses("This contract automatically renews annually.")
	if len(clauses.Dates) != 0 {
		t.Fatalf("expected no dates, got %v", clauses.Dates)
	}
	if len(clauses.AutoRenewal) != 1 {
		t.Fatalf("expected auto-renewal span, got %v", clauses.AutoRenewal)
	}
}
