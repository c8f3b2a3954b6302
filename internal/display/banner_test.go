package display

import (
	"strings"
	"testing"
)

func TestCenterBanner(t *testing.T) {
	out := centerBanner("ab\nabcd\n", 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "   ") || strings.HasPrefix(l, "    ") {
			t.Fatalf("line %q should be padded by 3 spaces", l)
		}
	}

	if got := centerBanner("", 80); got != "" {
		t.Fatalf("empty art rendered %q", got)
	}

	narrow := centerBanner("abcdef", 4)
	if strings.HasPrefix(narrow, " ") {
		t.Fatalf("art wider than terminal should not be padded: %q", narrow)
	}
}
