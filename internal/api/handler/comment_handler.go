package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/pkg/response"
)

type addCommentRequest struct {
	Sentiment   string `json:"sentiment"`
	Description string `json:"description"`
}

// AddComment 评论博文
// @Summary 发表评论（每人每天最多 3 条，每篇博文只能评论一次）
// @Tags 评论
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "博文ID"
// @Param request body addCommentRequest true "评论"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/blogs/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.commentService.AddComment(c.Request.Context(), c.Param("id"), s.Username, req.Sentiment, req.Description)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, cm)
}

// ListComments 博文评论
// @Summary 评论列表（按时间倒序）
// @Tags 评论
// @Param id path string true "博文ID"
// @Success 200 {object} response.Response{data=[]model.CommentView}
// @Failure 404 {object} response.Response
// @Router /api/v1/blogs/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	list, err := h.commentService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}
