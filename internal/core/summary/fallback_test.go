package summary

import "testing"

func TestFallbackFirstThreeLongSentences(t *testing.T) {
	text := "This agreement covers professional services. Short one. " +
		"Payment is due within thirty days of invoice. " +
		"Either party may terminate with written notice. " +
		"This fourth sentence must not appear in the output."
	got := Fallback(text)
	want := "This agreement covers professional services.  Payment is due within thirty days of invoice.  Either party may terminate with written notice."
	if got != want {
		t.Fatalf("unexpected summary:\n got %q\nwant %q", got, want)
	}
}

func TestFallbackDeterministic(t *testing.T) {
	text := "One long enough sentence here! Another long enough sentence here? A third long enough sentence here."
	first := Fallback(text)
	if second := Fallback(text); second != first {
		t.Fatalf("fallback not deterministic: %q vs %q", first, second)
	}
}

func TestFallbackEnsuresTrailingPeriod(t *testing.T) {
	got := Fallback("An agreement between the undersigned parties")
	if got != "An agreement between the undersigned parties." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestFallbackAllSentencesTooShort(t *testing.T) {
	if got := Fallback("Hi. Ok. No."); got != "." {
		t.Fatalf("expected bare period, got %q", got)
	}
}
