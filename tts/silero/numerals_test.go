package silero

import "testing"

func TestNumToWords(t *testing.T) {
	cases := map[int64]string{
		0:          "ноль",
		5:          "пять",
		11:         "одиннадцать",
		21:         "двадцать один",
		40:         "сорок",
		111:        "сто одиннадцать",
		365:        "триста шестьдесят пять",
		1000:       "одна тысяча",
		2000:       "две тысячи",
		5000:       "пять тысяч",
		21000:      "двадцать одна тысяча",
		1000000:    "один миллион",
		2000001:    "два миллиона один",
		-42:        "минус сорок два",
		1000000000: "один миллиард",
	}
	for n, want := range cases {
		if got := NumToWords(n); got != want {
			t.Fatalf("NumToWords(%d) = %q, 期望 %q", n, got, want)
		}
	}
}

func TestPluralForm(t *testing.T) {
	cases := map[int64]string{
		1:   "тысяча",
		2:   "тысячи",
		5:   "тысяч",
		11:  "тысяч",
		12:  "тысяч",
		21:  "тысяча",
		102: "тысячи",
	}
	for n, want := range cases {
		if got := pluralForm(n, "тысяча", "тысячи", "тысяч"); got != want {
			t.Fatalf("pluralForm(%d) = %q, 期望 %q", n, got, want)
		}
	}
}
