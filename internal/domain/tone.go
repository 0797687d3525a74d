package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tone selects the voice of the generated caption. It influences only the
// caption-stage instruction; the description stage is tone-agnostic.
type Tone string

const (
	ToneWitty     Tone = "witty"
	ToneBrutal    Tone = "brutal"
	ToneSarcastic Tone = "sarcastic"
	ToneFriendly  Tone = "friendly"
)

// Tones returns the supported tones in display order.
func Tones() []Tone {
	return []Tone{ToneWitty, ToneBrutal, ToneSarcastic, ToneFriendly}
}

// ParseTone validates user input against the fixed tone set.
func ParseTone(s string) (Tone, error) {
	switch t := Tone(strings.ToLower(strings.TrimSpace(s))); t {
	case ToneWitty, ToneBrutal, ToneSarcastic, ToneFriendly:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported tone %q", s)
	}
}

var toneTitle = cases.Title(language.English)

// DisplayName renders the tone for the selector UI.
func (t Tone) DisplayName() string {
	return toneTitle.String(string(t))
}

func (t Tone) String() string {
	return string(t)
}
