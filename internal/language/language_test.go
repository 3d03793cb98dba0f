package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := map[string]string{
		"eng": "en",
		"por": "pt",
		"fre": "fr",
		"fra": "fr",
		"EN":  "en",
		"xx":  "xx",
		"xxx": "",
		"":    "",
	}
	for input, want := range cases {
		if got := ToISO2(input); got != want {
			t.Errorf("ToISO2(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseTag(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"por-BR", "pt-br"},
		{"pt-BR", "pt-br"},
		{"eng", "en"},
		{"es", "es"},
		{"zh_CN", "zh-cn"},
	}
	for _, tc := range cases {
		got, err := ParseTag(tc.input)
		if err != nil {
			t.Errorf("ParseTag(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTag(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseTagRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "qqq", "por-XYZ123"} {
		if _, err := ParseTag(input); err == nil {
			t.Errorf("ParseTag(%q) should fail", input)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("por"); got != "Portuguese" {
		t.Fatalf("DisplayName(por) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(empty) = %q", got)
	}
	if got := DisplayName("klingon"); got != "KLINGON" {
		t.Fatalf("DisplayName(unknown) = %q", got)
	}
}
