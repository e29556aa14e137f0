// Package sentence 从文本流中切分出可供 TTS 合成的完整句子。
//
// 切分点为 .!?… 且后面跟空白加大写字母 (或缓冲区结尾)，同时排除
// 缩写 (г., ул.) 与 "字母.字母" (file.py) 这类伪边界。
package sentence

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// hardLimit 无边界时强制切分的长度上限 (按字符计)
	hardLimit = 250
	// mergeBufferLimit 过短句子的合并下限，避免逐词送入合成
	mergeBufferLimit = 20
)

// Detector 流式句子边界检测器
type Detector struct {
	buffer string
	held   string
}

// NewDetector 创建检测器
func NewDetector() *Detector {
	return &Detector{}
}

// AddChunk 追加一段文本，返回其中已完结的句子
func (d *Detector) AddChunk(chunk string) []string {
	d.buffer += chunk

	var out []string
	for {
		end := findBoundary(d.buffer)
		if end < 0 {
			runes := []rune(d.buffer)
			if len(runes) <= hardLimit {
				break
			}
			// 超长无边界: 在上限之前的最后一个空格处硬切
			split := hardLimit
			for i := hardLimit - 1; i > 0; i-- {
				if runes[i] == ' ' {
					split = i
					break
				}
			}
			out = append(out, d.process(string(runes[:split]))...)
			d.buffer = string(runes[split:])
			continue
		}

		out = append(out, d.process(d.buffer[:end])...)
		d.buffer = d.buffer[end:]
	}
	return out
}

// Finish 冲刷缓冲区与合并暂存，返回剩余文本
func (d *Detector) Finish() string {
	if d.buffer != "" {
		if out := d.process(d.buffer); len(out) > 0 {
			d.buffer = ""
			return strings.Join(out, " ")
		}
	}

	final := d.held
	d.buffer = ""
	d.held = ""
	return final
}

// process 清洗句子并按合并下限决定是否放行
func (d *Detector) process(raw string) []string {
	s := PostClean(raw)
	if s == "" {
		return nil
	}

	if d.held == "" {
		d.held = s
	} else {
		joiner := d.held
		if strings.HasSuffix(joiner, ".") {
			joiner = strings.TrimSuffix(joiner, ".") + ","
		}
		d.held = joiner + " " + s
	}

	if len([]rune(d.held)) >= mergeBufferLimit {
		merged := d.held
		d.held = ""
		return []string{merged}
	}
	return nil
}

// findBoundary 返回第一个有效句子边界之后的字节偏移，找不到时返回 -1
func findBoundary(s string) int {
	runes := []rune(s)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' && r != '…' {
			continue
		}
		if !boundaryAhead(runes, i) {
			continue
		}
		if shortWordBefore(runes, i) || letterDotLetterBefore(runes, i) {
			continue
		}
		return len(string(runes[:i+1]))
	}
	return -1
}

// boundaryAhead 终止符后必须是 空白+大写字母 或缓冲区结尾
func boundaryAhead(runes []rune, i int) bool {
	j := i + 1
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	if j == len(runes) {
		return true
	}
	return j > i+1 && unicode.IsUpper(runes[j])
}

// shortWordBefore 终止符前是 1..3 个字母的短词 (инициалы, "ул." 等)
func shortWordBefore(runes []rune, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && unicode.IsLetter(runes[j]); j-- {
		n++
		if n > 3 {
			return false
		}
	}
	return n >= 1
}

// letterDotLetterBefore 句点前是 "字母.字母" 形态 (file.py 的第二个点)
func letterDotLetterBefore(runes []rune, i int) bool {
	return i >= 3 &&
		unicode.IsLower(runes[i-1]) &&
		runes[i-2] == '.' &&
		unicode.IsLower(runes[i-3])
}

// 句子清洗所用的正则
var (
	listItemRe     = regexp.MustCompile(`(?m)^\s*(?:(\d+)\.|([*-]))\s*(.*)`)
	cyrAbbrevRe    = regexp.MustCompile(`(^|[^\p{L}])(\p{Cyrillic}{1,3})\.\s+(\p{Lu})`)
	leadingPunctRe = regexp.MustCompile(`^[.,\s]+`)
	quoteRe        = regexp.MustCompile(`[*«»"]`)
	emDashRe       = regexp.MustCompile(`\s*—\s*`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
	dupPunctRe     = regexp.MustCompile(`\s*([,.]\s*){2,}`)
)

// PostClean 对切出的句子做面向发音的最终整理
func PostClean(s string) string {
	// 列表项: "1. пункт" -> "1, пункт"，"- пункт" -> "пункт"
	s = listItemRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := listItemRe.FindStringSubmatch(m)
		if sub[1] != "" {
			return sub[1] + ", " + sub[3]
		}
		return sub[3]
	})

	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ";", ".")
	// 短缩写后的句点改为逗号，避免被读成长停顿
	s = cyrAbbrevRe.ReplaceAllString(s, "$1$2, $3")
	s = leadingPunctRe.ReplaceAllString(s, "")
	s = quoteRe.ReplaceAllString(s, "")
	s = emDashRe.ReplaceAllString(s, ", ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	// 连续标点收敛为最后一个
	s = dupPunctRe.ReplaceAllStringFunc(s, func(m string) string {
		trimmed := strings.TrimRight(m, " \t")
		return string(trimmed[len(trimmed)-1]) + " "
	})
	return strings.TrimSpace(s)
}
