package discovery

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// minTermRunes 短于该长度的词不参与检索(如"là"、"có")
const minTermRunes = 3

// numericTerm 数字词: 可带千分位分隔符(. 或 ,),可带k后缀(表示千)
var numericTerm = regexp.MustCompile(`^[0-9]+([.,][0-9]+)*k?$`)

// Terms 提问的分词结果
type Terms struct {
	Keywords []string         // 小写、去重、保持出现顺序
	MinPrice *decimal.Decimal // 提问中出现的第一个数字词
}

// HasPrice 是否按价格检索
func (t Terms) HasPrice() bool {
	return t.MinPrice != nil
}

// Tokenize 将自由文本切分为检索词
// 规则:
// 1. NFC规范化后转小写(越南语组合字符与预组字符视为同一个词)
// 2. 字母、数字、组合符号、'.'、','以外的字符都是分隔符,词首尾的'.'和','会被去掉
// 3. 丢弃长度<=2的词,去重
// 4. maxTerms>0时最多保留maxTerms个关键词
func Tokenize(text string, maxTerms int) Terms {
	normalized := norm.NFC.String(strings.ToLower(text))
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r) && r != '.' && r != ','
	})

	var terms Terms
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		term := strings.Trim(field, ".,")
		if utf8.RuneCountInString(term) < minTermRunes {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		if price, ok := parsePrice(term); ok {
			if terms.MinPrice == nil {
				terms.MinPrice = &price
			}
			continue
		}
		if maxTerms > 0 && len(terms.Keywords) >= maxTerms {
			continue
		}
		terms.Keywords = append(terms.Keywords, term)
	}
	return terms
}

// parsePrice 解析数字词: "120.000" → 120000, "150k" → 150000
func parsePrice(term string) (decimal.Decimal, bool) {
	if !numericTerm.MatchString(term) {
		return decimal.Zero, false
	}
	thousands := strings.HasSuffix(term, "k")
	digits := strings.TrimSuffix(term, "k")
	digits = strings.NewReplacer(".", "", ",", "").Replace(digits)

	price, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	if thousands {
		price = price.Mul(decimal.NewFromInt(1000))
	}
	return price, true
}
