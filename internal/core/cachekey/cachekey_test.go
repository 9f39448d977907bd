package cachekey

import "testing"

func TestForTrimInvariant(t *testing.T) {
	if For("  some contract text \n") != For("some contract text") {
		t.Fatalf("expected identical keys for trimmed-equal text")
	}
}

func TestForDistinctText(t *testing.T) {
	if For("contract a") == For("contract b") {
		t.Fatalf("expected distinct keys")
	}
}

func TestForInteriorWhitespaceSignificant(t *testing.T) {
	if For("a  b") == For("a b") {
		t.Fatalf("interior whitespace must affect the key")
	}
}
