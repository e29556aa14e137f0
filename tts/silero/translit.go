package silero

import (
	"regexp"
	"strings"
)

// englishWordRe 匹配英文单词 (撇号在前置清理中已删除，这里仍做兼容)
var englishWordRe = regexp.MustCompile(`\b[a-zA-Z]+(?:['’][a-zA-Z]+)*\b`)

// englishExceptions 高频词与品牌名的固定读法，优先于规则音译
var englishExceptions = map[string]string{
	"google": "гугл", "apple": "эпл", "microsoft": "майкрософт",
	"samsung": "самсунг", "toyota": "тойота", "volkswagen": "фольцваген",
	"coca": "кока", "cola": "кола", "pepsi": "пэпси", "whatsapp": "вотсап",
	"telegram": "телеграм", "youtube": "ютуб", "instagram": "инстаграм",
	"facebook": "фэйсбук", "twitter": "твиттер", "iphone": "айфон",
	"tesla": "тесла", "spacex": "спэйс икс", "amazon": "амазон",
	"python": "пайтон", "ai": "эй+ай", "api": "эйпиай",
	"it": "+ай т+и", "wifi": "вай фай", "rtx": "эрте+икс",
	"zigbee": "зигби", "mqtt": "эмкутити", "ha": "аш-а",
	"work": "ворк", "world": "ворлд", "bird": "бёрд",
	"girl": "гёрл", "burn": "бёрн", "her": "хёр",
	"early": "ёрли", "service": "сёрвис",
	"a": "э", "the": "зе", "of": "оф", "and": "энд", "for": "фо",
	"to": "ту", "in": "ин", "on": "он", "is": "из", "or": "ор",
	"knowledge": "ноуледж", "new": "нью",
	"video": "видео", "ru": "ру", "com": "ком",
	"hot": "хот", "https": "аштитипиэс", "http": "аштитипи",
}

// digraphRules 组合字母的读法规则，按长度优先匹配
var digraphRules = []struct {
	seq string
	out string
}{
	{"tion", "шн"},
	{"ough", "о"},
	{"igh", "ай"},
	{"tch", "ч"},
	{"qu", "кв"},
	{"ck", "к"},
	{"sh", "ш"},
	{"ch", "ч"},
	{"th", "с"},
	{"ph", "ф"},
	{"wh", "в"},
	{"kn", "н"},
	{"wr", "р"},
	{"oo", "у"},
	{"ee", "и"},
	{"ea", "и"},
	{"ai", "эй"},
	{"ay", "эй"},
	{"ey", "эй"},
	{"oa", "оу"},
	{"ou", "ау"},
	{"ow", "оу"},
	{"oy", "ой"},
	{"oi", "ой"},
	{"au", "о"},
	{"aw", "о"},
	{"ew", "ью"},
	{"ur", "ёр"},
	{"ir", "ёр"},
	{"er", "ер"},
	{"ar", "ар"},
	{"or", "ор"},
}

// simpleEnglishToRussian 单字母兜底音译表
var simpleEnglishToRussian = map[rune]string{
	'a': "э", 'b': "б", 'c': "к", 'd': "д", 'e': "е", 'f': "ф", 'g': "г",
	'h': "х", 'i': "и", 'j': "дж", 'k': "к", 'l': "л", 'm': "м", 'n': "н",
	'o': "о", 'p': "п", 'q': "к", 'r': "р", 's': "с", 't': "т", 'u': "у",
	'v': "в", 'w': "в", 'x': "кс", 'y': "и", 'z': "з",
}

var (
	doubleIotRe = regexp.MustCompile(`йй`)
	hushSoftRe  = regexp.MustCompile(`([чшщж])ь`)
)

// TransliterateEnglish 将文本中的英文单词替换为俄语读音
func TransliterateEnglish(text string) string {
	return englishWordRe.ReplaceAllStringFunc(text, transliterateWord)
}

// transliterateWord 单词级音译: 先查例外表，再按规则逐段转换
func transliterateWord(word string) string {
	normalized := strings.ReplaceAll(word, "’", "'")
	if ru, ok := englishExceptions[normalized]; ok {
		return ru
	}

	lower := strings.ToLower(normalized)
	if ru, ok := englishExceptions[lower]; ok {
		return ru
	}

	result := transliterateByRules(lower)
	result = doubleIotRe.ReplaceAllString(result, "й")
	result = hushSoftRe.ReplaceAllString(result, "$1")
	return result
}

// transliterateByRules 组合规则优先，单字母兜底，未识别字符原样保留
func transliterateByRules(word string) string {
	var b strings.Builder
	runes := []rune(word)

	pos := 0
	for pos < len(runes) {
		matched := false
		rest := string(runes[pos:])
		for _, rule := range digraphRules {
			if strings.HasPrefix(rest, rule.seq) {
				b.WriteString(rule.out)
				pos += len(rule.seq)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if ru, ok := simpleEnglishToRussian[runes[pos]]; ok {
			b.WriteString(ru)
		} else {
			b.WriteRune(runes[pos])
		}
		pos++
	}
	return b.String()
}
