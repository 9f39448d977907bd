package extraction

import "testing"

func TestDetectRedFlagsFixedOrder(t *testing.T) {
	// "automatic renewal" is declared before "unlimited liability" in the
	// text but after it in the pattern list; output follows pattern order.
	text := "Renewal: automatic renewal applies. Liability: unlimited liability for all claims."
	flags := DetectRedFlags(text)
	if len(flags) != 2 {
		t.Fatalf("expected exactly two flags, got %v", flags)
	}
	if flags[0] != "Unlimited liability clause detected" {
		t.Fatalf("unexpected first flag: %q", flags[0])
	}
	if flags[1] != "Automatic renewal clause found" {
		t.Fatalf("unexpected second flag: %q", flags[1])
	}
}

func TestDetectRedFlagsPresenceNotFrequency(t *testing.T) {
	text := "penalty penalty penalty"
	flags := DetectRedFlags(text)
	if len(flags) != 1 || flags[0] != "Penalty clause found" {
		t.Fatalf("expected single penalty flag, got %v", flags)
	}
}

func TestDetectRedFlagsAutomaticallyRenews(t *testing.T) {
	flags := DetectRedFlags("This contract automatically renews annually.")
	if len(flags) != 1 || flags[0] != "Automatic renewal clause found" {
		t.Fatalf("expected automatic renewal flag, got %v", flags)
	}
}

func TestDetectRedFlagsNone(t *testing.T) {
	flags := DetectRedFlags("A perfectly benign note.")
	if flags == nil {
		t.Fatalf("expected non-nil empty slice")
	}
	if len(flags) != 0 {
		t.Fatalf("expected no flags, got %v", flags)
	}
}

func TestDetectRedFlagsAssignmentWithoutConsent(t *testing.T) {
	text := "Assignment of this agreement without prior written consent is prohibited."
	flags := DetectRedFlags(text)
	found := false
	for _, f := range flags {
		if f == "Assignment without consent clause found" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected assignment flag, got %v", flags)
	}
}
