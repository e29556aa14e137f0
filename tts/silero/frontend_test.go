package silero

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Сейчас 25%", "Сейчас двадцать пять процентов"},
		{"Температура +5 градусов", "Температура плюс пять градусов"},
		{"Запусти google", "Запусти гугл"},
		{"Скорость 1.5 раза", "Скорость один и пять раза"},
		{"Привет,\nмир", "Привет, мир"},
	}

	for _, c := range cases {
		if got := NormalizeText(c.in); got != c.want {
			t.Fatalf("NormalizeText(%q) = %q, 期望 %q", c.in, got, c.want)
		}
	}
}

func TestPercentForm(t *testing.T) {
	cases := map[string]string{
		"1":   "процент",
		"2":   "процента",
		"5":   "процентов",
		"11":  "процентов",
		"21":  "процент",
		"104": "процента",
		"1.5": "процента",
	}
	for num, want := range cases {
		if got := percentForm(num); got != want {
			t.Fatalf("percentForm(%s) = %s, 期望 %s", num, got, want)
		}
	}
}

func TestNormalizeNumbersDecimal(t *testing.T) {
	cases := map[string]string{
		"1.5":   "один и пять",
		"2,5":   "два и пять",
		"2.25":  "два и двадцать пять сотых",
		"3.001": "три и одна тысячных",
		"4.02":  "четыре и две сотых",
	}
	for in, want := range cases {
		if got := normalizeNumbers(in); got != want {
			t.Fatalf("normalizeNumbers(%s) = %s, 期望 %s", in, got, want)
		}
	}
}

func TestReplaceColons(t *testing.T) {
	// 时间中的冒号保留，其余读作停顿
	if got := replaceColons("встреча в 12:30"); got != "встреча в 12:30" {
		t.Fatalf("时间冒号被误替换: %s", got)
	}
	if got := replaceColons("итак: поехали"); got != "итак, поехали" {
		t.Fatalf("冒号未替换: %s", got)
	}
}

func TestNormalizeSpecialChars(t *testing.T) {
	if got := normalizeSpecialChars(`он сказал: «привет» — и ушёл`); got != "он сказал, привет - и ушёл" {
		t.Fatalf("特殊符号清理错误: %q", got)
	}
	if got := normalizeSpecialChars("модель v5.1"); got != "модель v 5.1" {
		t.Fatalf("字母数字未拆分: %q", got)
	}
}

func TestSymbolsToIDs(t *testing.T) {
	tokenMap := defaultTokenMap()

	ids := symbolsToIDs("Привет", tokenMap)
	// 6 个字符 + 结尾 pad
	if len(ids) != 7 {
		t.Fatalf("ID 数量错误: %d", len(ids))
	}
	if ids[len(ids)-1] != 0 {
		t.Fatalf("结尾缺少 pad: %v", ids)
	}

	// OOV 字符应被跳过
	ids = symbolsToIDs("да€", tokenMap)
	if len(ids) != 3 {
		t.Fatalf("OOV 字符未被跳过: %v", ids)
	}
}

func TestPCM16Bytes(t *testing.T) {
	out := PCM16Bytes([]float32{0, 1.0, -1.0, 2.0})
	if len(out) != 8 {
		t.Fatalf("字节数错误: %d", len(out))
	}
	// 1.0 -> 32767 (0xFF 0x7F)，超出范围截断
	if out[2] != 0xFF || out[3] != 0x7F {
		t.Fatalf("正向满幅值错误: %v", out[2:4])
	}
	if out[6] != 0xFF || out[7] != 0x7F {
		t.Fatalf("越界值未截断: %v", out[6:8])
	}
}
