package silero

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// 俄语文本标准化所用的正则
var (
	emojiRe = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{1F900}-\x{1F9FF}\x{200D}\x{FE0F}]+`)

	percentRe     = regexp.MustCompile(`(\d+([.,]\d+)?)\s*%`)
	plusDigitRe   = regexp.MustCompile(`\+(\d)`)
	numberRe      = regexp.MustCompile(`\b\d+([.,]\d+)?\b`)
	letterDigitRe = regexp.MustCompile(`([a-zA-Zа-яА-ЯёЁ])(\d)`)
	digitLetterRe = regexp.MustCompile(`(\d)([a-zA-Zа-яА-ЯёЁ])`)
	spacesRe      = regexp.MustCompile(`\s+`)

	// finalCleanupRe 最终清理: 只保留西里尔字母、重音符与基本标点
	finalCleanupRe = regexp.MustCompile(`[^а-яА-ЯёЁ+?!., -]+`)

	// specialCharReplacer 删除对发音无意义的符号，统一各类横线
	specialCharReplacer = strings.NewReplacer(
		"=", "", "#", "", "$", "", "“", "", "”", "", "„", "", "«", "", "»", "",
		"<", "", ">", "", "*", "", `"`, "", "‘", "", "’", "", "‚", "", "‹", "",
		"›", "", "'", "", "/", "",
		"—", "-", "–", "-", "−", "-", " ", " ",
		"…", ".",
	)
)

// NormalizeText 俄语 TTS 前端的完整标准化流水线
//
// 依次执行: 百分号展开 -> 特殊符号清理 -> 加号展开 -> 数字转俄语
// -> 英文单词音译 -> 最终字符集过滤
func NormalizeText(text string) string {
	t := normalizePercentages(text)
	t = normalizeSpecialChars(t)
	t = normalizePlusBeforeNumber(t)
	t = normalizeNumbers(t)
	t = TransliterateEnglish(t)
	t = cleanupFinalText(t)
	return strings.TrimSpace(spacesRe.ReplaceAllString(t, " "))
}

// normalizePercentages 将 "45%" 展开为 "45 процентов" 并选择正确的词形
func normalizePercentages(text string) string {
	out := percentRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := percentRe.FindStringSubmatch(m)
		num := strings.ReplaceAll(sub[1], ",", ".")
		return " " + num + " " + percentForm(num) + " "
	})
	// 孤立的百分号
	return strings.ReplaceAll(out, "%", " процентов ")
}

// percentForm 按俄语语法选择 процент 的词形
func percentForm(num string) string {
	if strings.Contains(num, ".") {
		return "процента"
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return "процентов"
	}
	if r := n % 100; r > 10 && r < 20 {
		return "процентов"
	}
	switch n % 10 {
	case 1:
		return "процент"
	case 2, 3, 4:
		return "процента"
	}
	return "процентов"
}

// normalizeSpecialChars 清理表情、引号等符号并拆开粘连的字母数字
func normalizeSpecialChars(text string) string {
	t := emojiRe.ReplaceAllString(text, "")
	t = specialCharReplacer.Replace(t)
	t = replaceColons(t)
	t = letterDigitRe.ReplaceAllString(t, "$1 $2")
	t = digitLetterRe.ReplaceAllString(t, "$1 $2")
	t = strings.ReplaceAll(t, "\n", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(t, " "))
}

// replaceColons 把非时间用途的冒号换成逗号 (后面不是数字时)
func replaceColons(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if r != ':' {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsDigit(runes[i+1]) {
			runes[i] = ','
		}
	}
	return string(runes)
}

// normalizePlusBeforeNumber 数字前的 "+" 读作 плюс
func normalizePlusBeforeNumber(text string) string {
	return plusDigitRe.ReplaceAllString(text, " плюс $1")
}

// normalizeNumbers 将数字 (含小数) 展开为俄语文字
func normalizeNumbers(text string) string {
	return numberRe.ReplaceAllStringFunc(text, func(m string) string {
		num := strings.ReplaceAll(m, ",", ".")

		if intPart, fracPart, ok := strings.Cut(num, "."); ok {
			return decimalToWords(m, intPart, fracPart)
		}

		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			log.Warn().Str("number", m).Err(err).Msg("数字展开失败")
			return m
		}
		return NumToWords(n)
	})
}

// decimalToWords 小数的俄语读法
// 一位小数读作 "X и Y"，两位 "X и Y сотых"，三位 "X и Y тысячных"
func decimalToWords(raw, intPart, fracPart string) string {
	intVal, err1 := strconv.ParseInt(intPart, 10, 64)
	fracVal, err2 := strconv.ParseInt(fracPart, 10, 64)
	if err1 != nil || err2 != nil {
		log.Warn().Str("number", raw).Msg("数字展开失败")
		return raw
	}

	intWords := NumToWords(intVal)
	fracWords := NumToWords(fracVal)

	if len(fracPart) == 1 {
		return intWords + " и " + fracWords
	}

	// сотых/тысячных 属阴性，词尾需要调整
	if fracVal%10 == 1 && fracVal%100 != 11 && strings.HasSuffix(fracWords, "один") {
		fracWords = strings.TrimSuffix(fracWords, "один") + "одна"
	}
	if fracVal%10 == 2 && fracVal%100 != 12 && strings.HasSuffix(fracWords, "два") {
		fracWords = strings.TrimSuffix(fracWords, "два") + "две"
	}

	switch len(fracPart) {
	case 2:
		return intWords + " и " + fracWords + " сотых"
	case 3:
		return intWords + " и " + fracWords + " тысячных"
	}
	return intWords + " точка " + fracWords
}

// cleanupFinalText 过滤掉模型字符集之外的所有字符
func cleanupFinalText(text string) string {
	return finalCleanupRe.ReplaceAllString(text, " ")
}

// defaultSymbols 内置的 v5.1 俄语符号表，数组下标即符号 ID，0 为 pad
var defaultSymbols = []string{
	"_", " ", "!", "+", ",", "-", ".", "?",
	"а", "б", "в", "г", "д", "е", "ж", "з", "и", "й", "к", "л", "м", "н",
	"о", "п", "р", "с", "т", "у", "ф", "х", "ц", "ч", "ш", "щ", "ъ", "ы",
	"ь", "э", "ю", "я", "ё",
}

// defaultTokenMap 根据内置符号表构建映射
func defaultTokenMap() map[string]int64 {
	m := make(map[string]int64, len(defaultSymbols))
	for i, s := range defaultSymbols {
		m[s] = int64(i)
	}
	return m
}

// symbolsToIDs 将标准化后的文本逐字符转换为符号 ID 序列
// 大写字母先转小写，OOV 字符跳过并告警，结尾追加 pad
func symbolsToIDs(text string, tokenMap map[string]int64) []int64 {
	ids := make([]int64, 0, len(text)+1)
	for _, r := range strings.ToLower(text) {
		if id, ok := tokenMap[string(r)]; ok {
			ids = append(ids, id)
			continue
		}
		log.Warn().Str("symbol", string(r)).Msg("跳过未识别符号")
	}
	// 结尾 Pad
	ids = append(ids, 0)
	return ids
}
