package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/response"
)

type createBlogRequest struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	// TagList 逗号分隔，和 Tags 合并
	TagList string `json:"tag_list"`
}

type blogResponse struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
}

// CreateBlog 发布博文
// @Summary 发布博文（每人每天最多 2 篇）
// @Tags 博文
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createBlogRequest true "博文"
// @Success 201 {object} response.Response{data=blogResponse}
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/blogs [post]
func (h *Handler) CreateBlog(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tags := append(req.Tags, service.ParseTags(req.TagList)...)
	b, err := h.blogService.CreateBlog(c.Request.Context(), s.Username, req.Subject, req.Description, tags)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, blogResponse{
		ID:          b.ID,
		Owner:       b.Owner,
		Subject:     b.Subject,
		Description: b.Description,
		Tags:        b.TagNames(),
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetBlog 博文详情
// @Summary 博文详情
// @Tags 博文
// @Param id path string true "博文ID"
// @Success 200 {object} response.Response{data=blogResponse}
// @Failure 404 {object} response.Response
// @Router /api/v1/blogs/{id} [get]
func (h *Handler) GetBlog(c *gin.Context) {
	b, err := h.blogService.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, blogResponse{
		ID:          b.ID,
		Owner:       b.Owner,
		Subject:     b.Subject,
		Description: b.Description,
		Tags:        b.TagNames(),
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// SearchBlogs 按标签搜索
// @Summary 按标签搜索博文（按发布时间倒序）
// @Tags 博文
// @Param tag query string true "标签"
// @Success 200 {object} response.Response{data=[]model.BlogSummary}
// @Failure 400 {object} response.Response
// @Router /api/v1/blogs [get]
func (h *Handler) SearchBlogs(c *gin.Context) {
	tag := c.Query("tag")
	if tag == "" {
		response.BadRequest(c, "tag is required")
		return
	}
	list, err := h.blogService.SearchByTag(c.Request.Context(), tag)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// ListUserBlogs 某用户的博文
// @Summary 用户博文列表
// @Tags 博文
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=[]model.BlogSummary}
// @Router /api/v1/users/{username}/blogs [get]
func (h *Handler) ListUserBlogs(c *gin.Context) {
	list, err := h.blogService.ListByOwner(c.Request.Context(), c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}
