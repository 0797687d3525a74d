package domain

import "testing"

func TestParseTone(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		input   string
		want    Tone
		wantErr bool
	}{
		{name: "exact", input: "witty", want: ToneWitty},
		{name: "trimmed", input: "  brutal ", want: ToneBrutal},
		{name: "uppercase", input: "SARCASTIC", want: ToneSarcastic},
		{name: "friendly", input: "friendly", want: ToneFriendly},
		{name: "unknown", input: "poetic", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTone(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseTone(%q) expected error, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTone(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ParseTone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestToneDisplayName(t *testing.T) {
	t.Parallel()
	if got := ToneWitty.DisplayName(); got != "Witty" {
		t.Fatalf("DisplayName = %q, want %q", got, "Witty")
	}
}

func TestTonesOrder(t *testing.T) {
	t.Parallel()
	want := []Tone{ToneWitty, ToneBrutal, ToneSarcastic, ToneFriendly}
	got := Tones()
	if len(got) != len(want) {
		t.Fatalf("Tones() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tones()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
