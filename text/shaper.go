package text

import (
	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapedAdvance returns the HarfBuzz advance of s at size pixels.
//
// The parsed *gotext.Font is safe for concurrent use; the Face wrapping it
// and the HarfbuzzShaper are not, so each call gets its own face and a
// pooled shaper.
func (s *FontSource) shapedAdvance(str string, size float64) (fixed.Int26_6, error) {
	if str == "" {
		return 0, nil
	}
	f, err := s.parsedGoText()
	if err != nil {
		return 0, err
	}

	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shapers.Put(hb)
	return out.Advance, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
