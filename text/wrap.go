package text

import (
	"image"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Overflow selects what happens when wrapped text exceeds MaxLines.
type Overflow uint8

const (
	// OverflowShrink ends the last permitted line with the suffix.
	OverflowShrink Overflow = iota

	// OverflowClip drops the remaining text without a marker.
	OverflowClip
)

// String returns the string representation of the overflow policy.
func (o Overflow) String() string {
	switch o {
	case OverflowShrink:
		return "shrink"
	case OverflowClip:
		return "clip"
	default:
		return "unknown"
	}
}

// DefaultSuffix marks text shortened by OverflowShrink.
const DefaultSuffix = "..."

// WrapOptions configures Wrap.
type WrapOptions struct {
	// MaxWidth is the line budget in pixels. Zero or negative disables
	// width fitting; only explicit newlines break lines.
	MaxWidth int

	// MaxLines caps the number of produced lines. Zero means unlimited.
	MaxLines int

	// Overflow is the policy applied at MaxLines.
	Overflow Overflow

	// Suffix replaces DefaultSuffix for OverflowShrink.
	Suffix string
}

// Lines is the result of Wrap.
type Lines struct {
	Lines  []string
	Widths []int

	// Truncated reports that text was dropped at MaxLines.
	Truncated bool
}

// Len returns the number of lines.
func (l Lines) Len() int { return len(l.Lines) }

// MaxWidth returns the widest line's width.
func (l Lines) MaxWidth() int {
	w := 0
	for _, lw := range l.Widths {
		w = max(w, lw)
	}
	return w
}

// Wrap splits s into lines that fit opts.MaxWidth. Explicit newlines always
// start a new line. Each line is the FitWidth prefix of the remaining
// paragraph; a line that breaks on a space drops that space from the start
// of the next line. Every line holds at least one rune, so a single glyph
// wider than the budget still makes progress.
func Wrap(m Measurer, s string, opts WrapOptions) Lines {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	var out Lines
	add := func(line string) {
		out.Lines = append(out.Lines, line)
		out.Widths = append(out.Widths, m.Advance(line))
	}

	paragraphs := strings.Split(norm.NFC.String(s), "\n")
	for pi, rest := range paragraphs {
		for {
			if opts.MaxLines > 0 && len(out.Lines) == opts.MaxLines {
				out.Truncated = true
				return out
			}

			line := rest
			if opts.MaxWidth > 0 {
				line = FitWidth(m, rest, opts.MaxWidth)
				if line == "" && rest != "" {
					_, n := utf8.DecodeRuneInString(rest)
					line = rest[:n]
				}
			}
			remaining := rest[len(line):]

			lastAllowed := opts.MaxLines > 0 && len(out.Lines) == opts.MaxLines-1
			more := remaining != "" || pi < len(paragraphs)-1
			if lastAllowed && more {
				out.Truncated = true
				if opts.Overflow == OverflowShrink {
					line = shrinkLine(m, rest, opts.MaxWidth, suffix)
				}
				add(line)
				return out
			}

			add(line)
			if remaining == "" {
				break
			}
			rest = strings.TrimPrefix(remaining, " ")
			if rest == "" {
				break
			}
		}
	}
	return out
}

// shrinkLine fits the remaining paragraph text with suffix appended. The
// suffix is always present because text follows this line.
func shrinkLine(m Measurer, rest string, budget int, suffix string) string {
	if budget <= 0 {
		return trimTrailingSpace(rest) + suffix
	}
	room := budget - m.Advance(suffix)
	if room < 0 {
		return FitWidth(m, suffix, budget)
	}
	return trimTrailingSpace(FitWidth(m, rest, room)) + suffix
}

// Size returns the block size of the lines: the widest line by count
// lines of lineHeight pixels. A positive reserve sets the line count used
// for the height instead of the produced count.
func (l Lines) Size(lineHeight, reserve int) image.Point {
	n := len(l.Lines)
	if reserve > 0 {
		n = reserve
	}
	return image.Pt(l.MaxWidth(), n*lineHeight)
}
