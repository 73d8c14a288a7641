package text

import "unicode/utf8"

// FitWidth returns the longest rune prefix of s whose advance does not
// exceed budget. Prefix widths are monotonic, so the search needs
// O(log n) Advance calls.
func FitWidth(m Measurer, s string, budget int) string {
	if s == "" || budget < 0 {
		return ""
	}
	if m.Advance(s) <= budget {
		return s
	}

	// offsets[k] is the byte length of the k-rune prefix.
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	// Invariant: prefix lo fits, prefix hi does not.
	lo, hi := 0, len(offsets)-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if m.Advance(s[:offsets[mid]]) <= budget {
			lo = mid
		} else {
			hi = mid
		}
	}
	return s[:offsets[lo]]
}

// FitWidthSuffix returns s when it fits within budget. Otherwise it
// returns the longest prefix that fits together with suffix, followed by
// suffix. If not even the suffix fits, the result is the suffix clipped to
// budget.
func FitWidthSuffix(m Measurer, s string, budget int, suffix string) string {
	if m.Advance(s) <= budget {
		return s
	}
	room := budget - m.Advance(suffix)
	if room < 0 {
		return FitWidth(m, suffix, budget)
	}
	return trimTrailingSpace(FitWidth(m, s, room)) + suffix
}

func trimTrailingSpace(s string) string {
	for s != "" {
		r, n := utf8.DecodeLastRuneInString(s)
		if r != ' ' && r != '\t' {
			break
		}
		s = s[:len(s)-n]
	}
	return s
}
