package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookbridge/internal/application/book"
	"github.com/xiebiao/bookbridge/internal/domain/book"
	"github.com/xiebiao/bookbridge/internal/interface/http/dto"
	"github.com/xiebiao/bookbridge/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookbridge/pkg/errors"
	"github.com/xiebiao/bookbridge/pkg/response"
)

// BookHandler 图书目录HTTP处理器
type BookHandler struct {
	listBooksUseCase    *appbook.ListBooksUseCase
	getBookUseCase      *appbook.GetBookUseCase
	setActiveUseCase    *appbook.SetActiveUseCase
	createBookUseCase   *appbook.CreateBookUseCase
	updateBookUseCase   *appbook.UpdateBookUseCase
	listInactiveUseCase *appbook.ListInactiveUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	setActiveUseCase *appbook.SetActiveUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	listInactiveUseCase *appbook.ListInactiveUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:    listBooksUseCase,
		getBookUseCase:      getBookUseCase,
		setActiveUseCase:    setActiveUseCase,
		createBookUseCase:   createBookUseCase,
		updateBookUseCase:   updateBookUseCase,
		listInactiveUseCase: listInactiveUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询上架图书，支持关键词、分类、价格上限、书店过滤
// @Tags         图书
// @Produce      json
// @Param        page         query int    false "页码"
// @Param        page_size    query int    false "每页数量"
// @Param        keyword      query string false "关键词(标题、作者)"
// @Param        type_id      query int    false "分类ID"
// @Param        max_price    query string false "价格上限"
// @Param        bookstore_id query int    false "书店ID"
// @Param        sort_by      query string false "排序" Enums(price_asc, price_desc, rating_desc, created_at_desc)
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40900 参数错误
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	var maxPrice *decimal.Decimal
	if req.MaxPrice != "" {
		v, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			response.Error(c, book.ErrInvalidPrice)
			return
		}
		maxPrice = &v
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:        req.Page,
		PageSize:    req.PageSize,
		Keyword:     req.Keyword,
		TypeID:      req.TypeID,
		MaxPrice:    maxPrice,
		BookstoreID: req.BookstoreID,
		SortBy:      req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40402 图书不存在
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	detail, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// SetActive 上架/下架
// @Summary      图书上下架
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "图书ID"
// @Param        request body dto.SetActiveRequest true "上下架状态"
// @Success      200 {object} response.Response{data=bool}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40901 格式错误; code=40402 图书不存在
// @Router       /api/v1/books/{id}/active [put]
func (h *BookHandler) SetActive(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return
	}

	h.setActive(c, id, *req.Active)
}

// Deactivate 下架图书
// @Summary      下架图书
// @Description  图书数据保留，只是不再对外可见
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=bool}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40402 图书不存在
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Deactivate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}
	h.setActive(c, id, false)
}

func (h *BookHandler) setActive(c *gin.Context, id uint, active bool) {
	err := h.setActiveUseCase.Execute(c.Request.Context(), appbook.SetActiveRequest{
		BookID:     id,
		Active:     active,
		OperatorID: middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, true)
}

// CreateBook 新建图书
// @Summary      新建图书
// @Description  新书默认上架，quantity为初始库存(>=0)，之后的库存变化走进货/退货接口
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40901 格式错误(含quantity<0); code=40900 价格/书名/页数无效
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return
	}
	input, err := bookInput(req.BookRequest)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		BookInput:   input,
		BookstoreID: req.BookstoreID,
		Quantity:    req.Quantity,
		OperatorID:  middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdateBook 修改图书信息
// @Summary      修改图书信息
// @Description  只修改元数据，库存数量、上架状态与所属书店不变
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDetail}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40901 格式错误; code=40900 价格/书名/页数无效; code=40402 图书不存在
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return
	}
	input, err := bookInput(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookInput:  input,
		BookID:     id,
		OperatorID: middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// ListInactive 书店已下架图书
// @Summary      书店已下架图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        bookstoreId path  int true  "书店ID"
// @Param        page        query int false "页码"
// @Param        page_size   query int false "每页数量"
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Description  失败时HTTP状态码同样为200，由code区分: code=40100 未登录; code=40900 参数错误
// @Router       /api/v1/bookstores/{bookstoreId}/books/inactive [get]
func (h *BookHandler) ListInactive(c *gin.Context) {
	bookstoreID, ok := pathID(c, "bookstoreId")
	if !ok {
		response.Error(c, book.ErrInvalidBookstore)
		return
	}

	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+err.Error())
		return
	}

	result, err := h.listInactiveUseCase.Execute(c.Request.Context(), bookstoreID, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// bookInput 解析价格与出版日期
func bookInput(req dto.BookRequest) (appbook.BookInput, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return appbook.BookInput{}, book.ErrInvalidPrice
	}
	input := appbook.BookInput{
		ISBN:        req.ISBN,
		Title:       req.Title,
		Author:      req.Author,
		Translator:  req.Translator,
		Publisher:   req.Publisher,
		Language:    req.Language,
		PageCount:   req.PageCount,
		Description: req.Description,
		Price:       price,
		TypeID:      req.TypeID,
		ImageURL:    req.ImageURL,
	}
	if req.PublishedDate != "" {
		published, err := time.Parse(time.DateOnly, req.PublishedDate)
		if err != nil {
			return appbook.BookInput{}, apperrors.New(apperrors.ErrCodeInvalidParams, "出版日期格式错误")
		}
		input.PublishedDate = &published
	}
	return input, nil
}

// pathID 解析路径中的正整数ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
