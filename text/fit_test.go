package text

import (
	"math/bits"
	"strings"
	"testing"
)

func TestFitWidth(t *testing.T) {
	f := &monoFace{advance: 10}

	tests := []struct {
		name   string
		s      string
		budget int
		want   string
	}{
		{"fits whole", "Hello", 50, "Hello"},
		{"exact boundary", "Hello World", 50, "Hello"},
		{"between glyphs", "Hello World", 59, "Hello"},
		{"nothing fits", "Hello", 9, ""},
		{"empty input", "", 100, ""},
		{"negative budget", "abc", -1, ""},
		{"multibyte runes", "日本語テキスト", 30, "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitWidth(f, tt.s, tt.budget); got != tt.want {
				t.Errorf("FitWidth(%q, %d) = %q, want %q", tt.s, tt.budget, got, tt.want)
			}
		})
	}
}

// The fitted prefix never exceeds the budget, and one more rune would.
func TestFitWidthProperty(t *testing.T) {
	f := &monoFace{advance: 7}
	inputs := []string{"a", "Hello World", "The quick brown fox jumps", "ümlaut ßtraße", strings.Repeat("x", 300)}

	for _, s := range inputs {
		runes := []rune(s)
		for budget := 0; budget <= 7*len(runes)+10; budget += 3 {
			p := FitWidth(f, s, budget)
			if w := f.Advance(p); w > budget {
				t.Fatalf("FitWidth(%q, %d) = %q with width %d", s, budget, p, w)
			}
			n := len([]rune(p))
			if n < len(runes) && f.Advance(string(runes[:n+1])) <= budget {
				t.Fatalf("FitWidth(%q, %d) = %q is not the longest fitting prefix", s, budget, p)
			}
		}
	}
}

func TestFitWidthLogarithmicMeasurements(t *testing.T) {
	f := &monoFace{advance: 10}
	s := strings.Repeat("m", 1024)

	FitWidth(f, s, 5000)

	limit := bits.Len(uint(len(s))) + 2
	if f.calls > limit {
		t.Errorf("Advance called %d times, want <= %d", f.calls, limit)
	}
}

func TestFitWidthSuffix(t *testing.T) {
	f := &monoFace{advance: 10}

	if got := FitWidthSuffix(f, "Hello World", 80, "..."); got != "Hello..." {
		t.Errorf("FitWidthSuffix = %q, want %q", got, "Hello...")
	}
	if got := FitWidthSuffix(f, "Hi", 80, "..."); got != "Hi" {
		t.Errorf("FitWidthSuffix short = %q, want %q", got, "Hi")
	}
	if got := FitWidthSuffix(f, "Hello World", 20, "..."); got != ".." {
		t.Errorf("FitWidthSuffix tiny budget = %q, want %q", got, "..")
	}
	// The space before the cut is not kept in front of the suffix.
	if got := FitWidthSuffix(f, "Hello World", 90, "..."); got != "Hello..." {
		t.Errorf("FitWidthSuffix trailing space = %q, want %q", got, "Hello...")
	}
}
