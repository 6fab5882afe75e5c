package taxonomy

import (
	"strings"
	"testing"
)

func TestResolve_MergesAncestorChain(t *testing.T) {
	r := NewResolver()

	got := r.Resolve("0501")
	if got != "מזומנים ופקדונות בש\"ח" {
		t.Errorf("unexpected description for 0501: %q", got)
	}

	got = r.Resolve("03010101")
	if got != "אג\"ח הנסחרות בארץ ממשלתי צמוד מדד" {
		t.Errorf("unexpected description for 03010101: %q", got)
	}
}

func TestResolve_OverlapTrim(t *testing.T) {
	r := NewResolverWithIndex(map[string]string{
		"01":   "A B",
		"0101": "B C",
	})
	got := r.Resolve("0101")
	if got != "A B C" {
		t.Errorf("expected overlap-trimmed 'A B C', got %q", got)
	}
}

func TestResolve_DropsNonAdjacentDuplicates(t *testing.T) {
	r := NewResolverWithIndex(map[string]string{
		"01":   "X Y",
		"0101": "Z X",
	})
	got := r.Resolve("0101")
	if got != "X Y Z" {
		t.Errorf("expected whole-string dedup 'X Y Z', got %q", got)
	}
}

func TestResolve_SkipsUnknownAncestors(t *testing.T) {
	r := NewResolverWithIndex(map[string]string{
		"010101": "leaf only",
	})
	got := r.Resolve("010101")
	if got != "leaf only" {
		t.Errorf("expected leaf-only description, got %q", got)
	}
}

func TestResolve_UnknownCode(t *testing.T) {
	r := NewResolver()
	if got := r.Resolve("99"); got != "" {
		t.Errorf("expected empty description for unknown code, got %q", got)
	}
	if got := r.Resolve(""); got != "" {
		t.Errorf("expected empty description for empty code, got %q", got)
	}
}

func TestResolve_NoImmediateWordRepeats(t *testing.T) {
	r := NewResolver()
	for code := range codeIndex {
		words := strings.Fields(r.Resolve(code))
		for i := 1; i < len(words); i++ {
			if words[i] == words[i-1] {
				t.Errorf("code %s resolves with repeated word %q: %v", code, words[i], words)
			}
		}
	}
}

func TestDescribe_KnownAndUnknown(t *testing.T) {
	r := NewResolver()
	if got := r.Describe("05"); got != "05 (מזומנים ופקדונות)" {
		t.Errorf("unexpected labeled form: %q", got)
	}
	if got := r.Describe("9999"); got != "9999" {
		t.Errorf("expected bare code for unknown, got %q", got)
	}
}

func TestDescribeJoined_MultipleCodes(t *testing.T) {
	r := NewResolverWithIndex(map[string]string{
		"02": "second",
		"04": "fourth",
	})

	got := r.DescribeJoined([]string{"02", "04"}, "/")
	if got != "02/04 (second/fourth)" {
		t.Errorf("unexpected joined form: %q", got)
	}

	got = r.DescribeJoined([]string{"02", "99"}, "/")
	if got != "02/99 (second)" {
		t.Errorf("expected unknown description omitted, got %q", got)
	}

	got = r.DescribeJoined([]string{"98", "99"}, "/")
	if got != "98/99" {
		t.Errorf("expected bare codes when nothing resolves, got %q", got)
	}

	got = r.DescribeJoined([]string{"02"}, "/")
	if got != "02 (second)" {
		t.Errorf("expected single-code form, got %q", got)
	}
}

func TestResolveJoined_SkipsEmpty(t *testing.T) {
	r := NewResolver()
	got := r.ResolveJoined([]string{"05", "99"}, "/")
	if got != "מזומנים ופקדונות" {
		t.Errorf("unexpected joined descriptions: %q", got)
	}
}

func TestAncestors_Chain(t *testing.T) {
	r := NewResolver()
	chain := r.Ancestors("03010101")
	if len(chain) != 4 {
		t.Fatalf("expected 4 ancestors, got %d", len(chain))
	}
	wantCodes := []string{"03", "0301", "030101", "03010101"}
	for i, want := range wantCodes {
		if chain[i].Code != want {
			t.Errorf("ancestor %d: expected code %s, got %s", i, want, chain[i].Code)
		}
		if chain[i].Description == "" {
			t.Errorf("ancestor %s has empty description", chain[i].Code)
		}
	}
}
