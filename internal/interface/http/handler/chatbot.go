package handler

import (
	"github.com/gin-gonic/gin"

	appchatbot "github.com/xiebiao/bookbridge/internal/application/chatbot"
	"github.com/xiebiao/bookbridge/internal/domain/chat"
	"github.com/xiebiao/bookbridge/internal/interface/http/dto"
	"github.com/xiebiao/bookbridge/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// ChatbotHandler 图书问答HTTP处理器
type ChatbotHandler struct {
	askUseCase *appchatbot.AskUseCase
}

// NewChatbotHandler 创建问答处理器
func NewChatbotHandler(askUseCase *appchatbot.AskUseCase) *ChatbotHandler {
	return &ChatbotHandler{askUseCase: askUseCase}
}

// Ask 全站问答
// @Summary      全站图书问答
// @Description  登录用户续用最近的会话，匿名访客每次新建会话
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        request body dto.AskRequest true "问题"
// @Success      200 {object} response.Response{data=dto.AskResponse}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40900 问题为空; code=50003 生成服务不可用
// @Router       /api/v1/chatbot/ask [post]
func (h *ChatbotHandler) Ask(c *gin.Context) {
	h.ask(c, nil)
}

// AskInBookstore 书店内问答
// @Summary      书店内图书问答
// @Tags         对话
// @Accept       json
// @Produce      json
// @Param        bookstoreId path int            true "书店ID"
// @Param        request     body dto.AskRequest true "问题"
// @Success      200 {object} response.Response{data=dto.AskResponse}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40900 问题为空或书店ID无效; code=50003 生成服务不可用
// @Router       /api/v1/chatbot/bookstores/{bookstoreId}/ask [post]
func (h *ChatbotHandler) AskInBookstore(c *gin.Context) {
	id, ok := pathID(c, "bookstoreId")
	if !ok {
		response.Error(c, appchatbot.ErrInvalidScope)
		return
	}
	h.ask(c, &id)
}

// Ping 存活检查
// @Summary      对话服务存活检查
// @Tags         对话
// @Produce      json
// @Success      200 {object} response.Response{data=string}
// @Router       /api/v1/chatbot/ping [get]
func (h *ChatbotHandler) Ping(c *gin.Context) {
	response.Success(c, "Chatbot API is alive!")
}

func (h *ChatbotHandler) ask(c *gin.Context, bookstoreID *uint) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return
	}

	result, err := h.askUseCase.Execute(c.Request.Context(), appchatbot.AskRequest{
		Question:    req.Question,
		BookstoreID: bookstoreID,
		Identity: chat.Identity{
			UserID: middleware.GetUserID(c),
			Name:   middleware.GetUserName(c),
			Role:   middleware.GetUserRole(c),
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	books := make([]dto.BookInfo, len(result.Books))
	for i, b := range result.Books {
		books[i] = dto.BookInfo{
			ID:          b.ID,
			Title:       b.Title,
			BookstoreID: b.BookstoreID,
			Price:       b.Price,
			ImageURL:    b.ImageURL,
		}
	}
	response.Success(c, dto.AskResponse{
		Answer:    result.Answer,
		Books:     books,
		SessionID: result.SessionID,
	})
}
