package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxTerms int
		keywords []string
		minPrice string
	}{
		{
			name:     "小写去重并丢弃短词",
			text:     "Sách Trinh Thám là gì? trinh thám!",
			keywords: []string{"sách", "trinh", "thám"},
		},
		{
			name:     "全站最多5个词",
			text:     "alpha beta gamma delta epsilon zeta",
			maxTerms: 5,
			keywords: []string{"alpha", "beta", "gamma", "delta", "epsilon"},
		},
		{
			name:     "书店内不限词数",
			text:     "alpha beta gamma delta epsilon zeta",
			keywords: []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"},
		},
		{
			name:     "千分位价格",
			text:     "sách giá trên 120.000 đồng",
			keywords: []string{"sách", "giá", "trên", "đồng"},
			minPrice: "120000",
		},
		{
			name:     "k后缀价格",
			text:     "truyện 150k",
			keywords: []string{"truyện"},
			minPrice: "150000",
		},
		{
			name:     "两位数字被当作短词丢弃",
			text:     "top 10 novels",
			keywords: []string{"top", "novels"},
		},
		{
			name: "空文本",
			text: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms := Tokenize(tt.text, tt.maxTerms)
			assert.Equal(t, tt.keywords, terms.Keywords)
			if tt.minPrice == "" {
				assert.Nil(t, terms.MinPrice)
				return
			}
			require.NotNil(t, terms.MinPrice)
			assert.Equal(t, tt.minPrice, terms.MinPrice.String())
		})
	}
}

func TestTokenize_NormalizesComposedForms(t *testing.T) {
	// "thám" 预组字符 与 "tha" + U+0301 组合字符
	composed := Tokenize("th\u00e1m", 0)
	decomposed := Tokenize("tha\u0301m", 0)
	assert.Equal(t, []string{"th\u00e1m"}, decomposed.Keywords)
	assert.Equal(t, composed.Keywords, decomposed.Keywords)
}

func TestTokenize_FirstPriceWins(t *testing.T) {
	terms := Tokenize("từ 100k đến 200k", 0)
	require.True(t, terms.HasPrice())
	assert.Equal(t, "100000", terms.MinPrice.String())
}
