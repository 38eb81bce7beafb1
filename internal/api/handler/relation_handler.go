package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/pkg/response"
)

type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow 关注用户（关注者为当前登录用户）
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "被关注的用户"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	outcome, err := h.relService.Follow(c.Request.Context(), s.Username, req.Username)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"result": outcome.String()})
}

// Unfollow 取消关注（幂等）
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "取消关注的用户"
// @Success 200 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), s.Username, req.Username); err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, nil)
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=[]model.UserSummary}
// @Router /api/v1/relations/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	list, err := h.relService.ListFollowing(c.Request.Context(), c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=[]model.UserSummary}
// @Router /api/v1/relations/{username}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	list, err := h.relService.ListFollowers(c.Request.Context(), c.Param("username"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}
