package automod

import "testing"

func TestScanFlagsObfuscatedVariants(t *testing.T) {
	filter := New(nil)

	plainTerm, flagged := filter.Scan("n1gga text")
	if !flagged {
		t.Fatalf("expected plain variant to flag")
	}
	separatedTerm, flagged := filter.Scan("n.i.g.g.a text")
	if !flagged {
		t.Fatalf("expected separated variant to flag")
	}
	if plainTerm == "" || separatedTerm == "" {
		t.Fatalf("expected matched terms, got %q and %q", plainTerm, separatedTerm)
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	filter := New(nil)
	if _, flagged := filter.Scan("RETARD"); !flagged {
		t.Fatalf("expected upper-case text to flag")
	}
}

func TestScanCleanText(t *testing.T) {
	filter := New(nil)
	if term, flagged := filter.Scan("hello world"); flagged {
		t.Fatalf("did not expect flag, matched %q", term)
	}
	if _, flagged := filter.Scan(""); flagged {
		t.Fatalf("did not expect empty message to flag")
	}
}

func TestScanFirstMatchInListOrder(t *testing.T) {
	filter := New([]string{"alpha", "beta"})
	term, flagged := filter.Scan("beta then alpha")
	if !flagged {
		t.Fatalf("expected flag")
	}
	if term != "alpha" {
		t.Fatalf("expected first term in list order, got %q", term)
	}
}

func TestScanSubstringInsideWord(t *testing.T) {
	// Substring matching is intentional; embedded terms flag too.
	filter := New([]string{"nga"})
	if _, flagged := filter.Scan("ongabonga"); !flagged {
		t.Fatalf("expected embedded substring to flag")
	}
}
