package sentence

import (
	"strings"
	"testing"
)

func TestDetectorStreaming(t *testing.T) {
	d := NewDetector()

	if out := d.AddChunk("Сегодня хорошая пого"); len(out) != 0 {
		t.Fatalf("不完整文本被提前切分: %v", out)
	}

	out := d.AddChunk("да. Значит гуляем долго.")
	want := []string{"Сегодня хорошая погода.", "Значит гуляем долго."}
	if len(out) != len(want) {
		t.Fatalf("句子数量错误: %v", out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("第 %d 句错误: %q, 期望 %q", i, out[i], want[i])
		}
	}
}

func TestDetectorMergesShortSentences(t *testing.T) {
	d := NewDetector()

	// 两个短句都低于合并下限，应一直暂存到 Finish
	if out := d.AddChunk("Ладно. Хорошо."); len(out) != 0 {
		t.Fatalf("短句未被合并: %v", out)
	}
	if got := d.Finish(); got != "Ладно, Хорошо." {
		t.Fatalf("合并结果错误: %q", got)
	}
}

func TestDetectorSkipsAbbreviation(t *testing.T) {
	d := NewDetector()

	out := d.AddChunk("Я живу на ул. Ленина в Москве.")
	if len(out) != 1 {
		t.Fatalf("缩写处被误切分: %v", out)
	}
	if out[0] != "Я живу на ул, Ленина в Москве." {
		t.Fatalf("缩写句点未转逗号: %q", out[0])
	}
}

func TestDetectorSkipsShortWordBeforeAnyTerminator(t *testing.T) {
	d := NewDetector()

	// 短词后的 ! ? 同样不算边界，与句点一致
	if out := d.AddChunk("Да! Сегодня хорошая погода"); len(out) != 0 {
		t.Fatalf("短词感叹号被误切分: %v", out)
	}
	if got := d.Finish(); got != "Да! Сегодня хорошая погода" {
		t.Fatalf("冲刷结果错误: %q", got)
	}
}

func TestDetectorHardLimit(t *testing.T) {
	d := NewDetector()

	out := d.AddChunk(strings.Repeat("слово ", 45))
	if len(out) != 1 {
		t.Fatalf("超长文本未被硬切: %v", out)
	}
	if n := len([]rune(out[0])); n > hardLimit {
		t.Fatalf("硬切后长度超限: %d", n)
	}
	if rest := d.Finish(); rest == "" {
		t.Fatal("剩余文本丢失")
	}
}

func TestDetectorFinish(t *testing.T) {
	d := NewDetector()
	d.AddChunk("Ладно.")
	if got := d.Finish(); got != "Ладно." {
		t.Fatalf("Finish 结果错误: %q", got)
	}

	// 冲刷后状态应清空
	if got := d.Finish(); got != "" {
		t.Fatalf("二次 Finish 应为空: %q", got)
	}
}

func TestPostClean(t *testing.T) {
	cases := map[string]string{
		"1. Первый пункт":      "1, Первый пункт",
		"- пункт списка":       "пункт списка",
		"«Привет» — сказал он": "Привет, сказал он",
		"Раз;; два":            "Раз. два",
		"а ,, б":               "а, б",
		", привет":             "привет",
		"   ":                  "",
	}
	for in, want := range cases {
		if got := PostClean(in); got != want {
			t.Fatalf("PostClean(%q) = %q, 期望 %q", in, got, want)
		}
	}
}
