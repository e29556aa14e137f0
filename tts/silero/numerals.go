package silero

import "strings"

// 俄语基数词表
var (
	unitsMasc = []string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	unitsFem  = []string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	teens     = []string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать", "пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	tens      = []string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят", "шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundreds  = []string{"", "сто", "двести", "триста", "четыреста", "пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

// numScale 千位分组的量词，俄语中 тысяча 为阴性
type numScale struct {
	one, few, many string
	feminine       bool
}

var numScales = []numScale{
	{},
	{"тысяча", "тысячи", "тысяч", true},
	{"миллион", "миллиона", "миллионов", false},
	{"миллиард", "миллиарда", "миллиардов", false},
	{"триллион", "триллиона", "триллионов", false},
	{"квадриллион", "квадриллиона", "квадриллионов", false},
	{"квинтиллион", "квинтиллиона", "квинтиллионов", false},
}

// NumToWords 将整数展开为俄语文字
func NumToWords(n int64) string {
	if n == 0 {
		return "ноль"
	}

	var words []string
	if n < 0 {
		words = append(words, "минус")
		n = -n
	}

	// 按千位拆分，从高位往低位
	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}
		scale := numScales[i]
		words = append(words, tripleToWords(group, scale.feminine)...)
		if i > 0 {
			words = append(words, pluralForm(group, scale.one, scale.few, scale.many))
		}
	}

	return strings.Join(words, " ")
}

// tripleToWords 展开 1..999
func tripleToWords(n int64, feminine bool) []string {
	units := unitsMasc
	if feminine {
		units = unitsFem
	}

	var words []string
	if h := n / 100; h > 0 {
		words = append(words, hundreds[h])
	}

	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		words = append(words, teens[rest-10])
	case rest > 0:
		if t := rest / 10; t > 0 {
			words = append(words, tens[t])
		}
		if u := rest % 10; u > 0 {
			words = append(words, units[u])
		}
	}
	return words
}

// pluralForm 按数值选择俄语量词词形 (1 тысяча, 2 тысячи, 5 тысяч)
func pluralForm(n int64, one, few, many string) string {
	if r := n % 100; r > 10 && r < 20 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	}
	return many
}
