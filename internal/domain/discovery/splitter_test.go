package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		answer  string
		ids     []uint
		wantErr bool
	}{
		{
			name:   "标准格式",
			raw:    "Xin chào ----START----[{\"Id\":1,\"Title\":\"A\",\"BookstoreId\":2}]----END----",
			answer: "Xin chào",
			ids:    []uint{1},
		},
		{
			name:   "没有标记",
			raw:    "  Chỉ có câu trả lời.  ",
			answer: "Chỉ có câu trả lời.",
			ids:    []uint{},
		},
		{
			name:    "数据块不是合法JSON",
			raw:     "Trả lời ----START---- [{id: 1,} ----END----",
			answer:  "Trả lời",
			ids:     []uint{},
			wantErr: true,
		},
		{
			name:    "缺少结束标记",
			raw:     "Trả lời ----START----[{\"id\":1}]",
			answer:  "Trả lời",
			ids:     []uint{},
			wantErr: true,
		},
		{
			name:   "代码块包裹、字符串ID、去重",
			raw:    "Gợi ý [ID:3]\n----START----\n```json\n[{\"ID\":\"3\",\"title\":\"B\"},{\"id\":5},{\"id\":3}]\n```\n----END----\nCảm ơn",
			answer: "Gợi ý [ID:3]",
			ids:    []uint{3, 5},
		},
		{
			name:   "空数组",
			raw:    "Không có sách phù hợp.----START----[]----END----",
			answer: "Không có sách phù hợp.",
			ids:    []uint{},
		},
		{
			name:   "单个对象、非法ID被跳过",
			raw:    "ok ----START----{\"id\":7.0,\"bookstoreId\":\"2\"}----END----",
			answer: "ok",
			ids:    []uint{7},
		},
		{
			name:   "结束标记出现在开始标记之前",
			raw:    "----END---- a ----START----[{\"id\":-1},{\"id\":\"x\"},{\"id\":4}]----END----",
			answer: "----END---- a",
			ids:    []uint{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := SplitResponse(tt.raw)
			assert.Equal(t, tt.answer, split.Answer)
			assert.Equal(t, tt.ids, split.IDs())
			if tt.wantErr {
				assert.Error(t, split.Err)
			} else {
				assert.NoError(t, split.Err)
			}
		})
	}
}

func TestSplitResponse_KeepsTitleAndStore(t *testing.T) {
	split := SplitResponse("x ----START----[{\"id\":1,\"TITLE\":\"A\",\"bookstoreid\":2}]----END----")
	require.Len(t, split.References, 1)
	assert.Equal(t, Reference{ID: 1, Title: "A", BookstoreID: 2}, split.References[0])
}
