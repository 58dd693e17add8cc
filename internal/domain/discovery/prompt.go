package discovery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
)

// 推荐数据块的起止标记(模型回答必须以该块结尾)
const (
	StartMarker = "----START----"
	EndMarker   = "----END----"
)

// descriptionExcerptRunes 详细模式下简介摘录的最大长度
const descriptionExcerptRunes = 200

// PromptInput 构建提示词所需的全部输入
type PromptInput struct {
	Candidates []*book.Book
	History    []*chat.Message
	Identity   chat.Identity
	Question   string
	Locale     string // 回答语言,如"vi"、"en"
	Detailed   bool   // 书店内检索时附带出版社、语言、页数和简介
}

// BuildPrompt 渲染提示词(纯函数)
// 结构: 角色说明 → 用户身份 → 候选图书 → 历史对话 → 问题 → 输出约定
func BuildPrompt(in PromptInput) string {
	var sb strings.Builder

	sb.WriteString("Bạn là trợ lý tư vấn sách của hệ thống BookBridge. ")
	sb.WriteString("Chỉ giới thiệu những cuốn sách có trong dữ liệu bên dưới.\n\n")

	sb.WriteString("Người dùng: ")
	sb.WriteString(in.Identity.Tag())
	sb.WriteString("\n\n")

	sb.WriteString("Dữ liệu từ hệ thống BookBridge:\n")
	if len(in.Candidates) == 0 {
		sb.WriteString("(không có sách phù hợp)\n")
	}
	for _, b := range in.Candidates {
		writeCandidate(&sb, b, in.Detailed)
	}

	if len(in.History) > 0 {
		sb.WriteString("\nLịch sử trò chuyện:\n")
		for _, m := range in.History {
			fmt.Fprintf(&sb, "%s: %s\n", m.Sender, m.Content)
		}
	}

	sb.WriteString("\nCâu hỏi: ")
	sb.WriteString(strings.TrimSpace(in.Question))
	sb.WriteString("\n\n")

	sb.WriteString("Yêu cầu:\n")
	fmt.Fprintf(&sb, "1. Trả lời tự nhiên, ngắn gọn bằng %s.\n", localeName(in.Locale))
	sb.WriteString("2. Khi nhắc đến một cuốn sách, ghi kèm mã theo dạng [ID:<id>].\n")
	fmt.Fprintf(&sb, "3. Luôn kết thúc câu trả lời bằng %s, một mảng JSON các sách đã nhắc đến ", StartMarker)
	fmt.Fprintf(&sb, "và %s. Mảng có thể rỗng.\n", EndMarker)
	fmt.Fprintf(&sb, "Ví dụ: %s[{\"id\":1,\"title\":\"Tên sách\",\"bookstoreId\":2}]%s\n", StartMarker, EndMarker)

	return sb.String()
}

func writeCandidate(sb *strings.Builder, b *book.Book, detailed bool) {
	typeName := b.TypeName
	if typeName == "" {
		typeName = "Không rõ thể loại"
	}
	fmt.Fprintf(sb, "- [ID:%d] %s | Thể loại: %s | Tác giả: %s | Giá: %s",
		b.ID, b.Title, typeName, b.Author, b.Price.StringFixed(0))
	if b.AverageRating != nil {
		fmt.Fprintf(sb, " | Đánh giá: %.1f (%d)", b.Rating(), b.Ratings())
	}
	if detailed {
		if b.Publisher != "" {
			fmt.Fprintf(sb, " | NXB: %s", b.Publisher)
		}
		if b.Language != "" {
			fmt.Fprintf(sb, " | Ngôn ngữ: %s", b.Language)
		}
		if b.PageCount != nil {
			fmt.Fprintf(sb, " | Số trang: %d", *b.PageCount)
		}
		if desc := excerpt(b.Description, descriptionExcerptRunes); desc != "" {
			fmt.Fprintf(sb, " | Mô tả: %s", desc)
		}
	}
	sb.WriteString("\n")
}

// excerpt 截取前n个字符,单行化
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func localeName(locale string) string {
	switch strings.ToLower(locale) {
	case "", "vi", "vi-vn":
		return "tiếng Việt"
	case "en", "en-us", "en-gb":
		return "tiếng Anh"
	default:
		return locale
	}
}
