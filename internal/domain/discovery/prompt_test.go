package discovery

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
)

func sampleBooks() []*book.Book {
	pages := 320
	rating := 4.5
	count := 12
	return []*book.Book{
		{
			ID: 11, Title: "Nhà Giả Kim", Author: "Paulo Coelho", TypeName: "Tiểu thuyết",
			Price: decimal.NewFromInt(79000), Publisher: "NXB Hội Nhà Văn", Language: "Tiếng Việt",
			PageCount: &pages, AverageRating: &rating, RatingsCount: &count,
			Description: strings.Repeat("á", 250),
		},
		{ID: 12, Title: "Sherlock Holmes", Author: "Arthur Conan Doyle", Price: decimal.NewFromInt(120000)},
	}
}

func TestBuildPrompt_Basic(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Candidates: sampleBooks(),
		History: []*chat.Message{
			{Sender: "Lan (Customer)", Kind: chat.KindUser, Content: "Có sách trinh thám không?"},
			{Sender: chat.AssistantSender, Kind: chat.KindAssistant, Content: "Có [ID:12]"},
		},
		Identity: chat.Identity{UserID: "u-1", Name: "Lan", Role: "Customer"},
		Question: "  Gợi ý thêm đi  ",
	})

	assert.Contains(t, prompt, "[ID:11] Nhà Giả Kim | Thể loại: Tiểu thuyết | Tác giả: Paulo Coelho | Giá: 79000")
	assert.Contains(t, prompt, "[ID:12] Sherlock Holmes | Thể loại: Không rõ thể loại")
	assert.Contains(t, prompt, "Người dùng: Lan (Customer)")
	assert.Contains(t, prompt, "AI: Có [ID:12]")
	assert.Contains(t, prompt, "Câu hỏi: Gợi ý thêm đi\n")
	assert.Contains(t, prompt, "tiếng Việt")
	assert.Contains(t, prompt, StartMarker)
	assert.Contains(t, prompt, EndMarker)
	assert.NotContains(t, prompt, "NXB Hội Nhà Văn", "非详细模式不输出出版社")
}

func TestBuildPrompt_Detailed(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Candidates: sampleBooks(),
		Question:   "sách hay",
		Locale:     "en",
		Detailed:   true,
	})

	assert.Contains(t, prompt, "NXB: NXB Hội Nhà Văn")
	assert.Contains(t, prompt, "Số trang: 320")
	assert.Contains(t, prompt, "Mô tả: "+strings.Repeat("á", 200)+"...")
	assert.NotContains(t, prompt, strings.Repeat("á", 201))
	assert.Contains(t, prompt, "Người dùng: Guest")
	assert.Contains(t, prompt, "tiếng Anh")
	assert.NotContains(t, prompt, "Lịch sử trò chuyện")
}

func TestBuildPrompt_NoCandidates(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Question: "xin chào"})
	assert.Contains(t, prompt, "(không có sách phù hợp)")
}
