package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/pkg/response"
)

// CoPostedTags Q1
// @Summary 同一天分别发过 tag_a、tag_b 博文的用户
// @Tags 报表
// @Param tag_a query string true "标签A"
// @Param tag_b query string true "标签B"
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/co-posted-tags [get]
func (h *Handler) CoPostedTags(c *gin.Context) {
	list, err := h.reportService.CoPostedTags(c.Request.Context(), c.Query("tag_a"), c.Query("tag_b"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// MostBlogs Q2
// @Summary 指定日期发文最多的用户
// @Tags 报表
// @Param date query string true "日期 YYYY-MM-DD"
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/most-blogs [get]
func (h *Handler) MostBlogs(c *gin.Context) {
	list, err := h.reportService.MostBlogsOnDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// CommonFollowees Q3
// @Summary 两个用户共同关注的人
// @Tags 报表
// @Param user_a query string true "用户A"
// @Param user_b query string true "用户B"
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/common-followees [get]
func (h *Handler) CommonFollowees(c *gin.Context) {
	list, err := h.reportService.CommonFollowees(c.Request.Context(), c.Query("user_a"), c.Query("user_b"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// NoBlogs Q4
// @Summary 从未发文的用户
// @Tags 报表
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/no-blogs [get]
func (h *Handler) NoBlogs(c *gin.Context) {
	list, err := h.reportService.UsersWithNoBlogs(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// AllPositiveBlogs Q5
// @Summary 某用户所有评论均为好评的博文
// @Tags 报表
// @Param owner query string true "作者"
// @Success 200 {object} response.Response{data=[]model.BlogRef}
// @Router /api/v1/reports/all-positive-blogs [get]
func (h *Handler) AllPositiveBlogs(c *gin.Context) {
	list, err := h.reportService.AllPositiveBlogs(c.Request.Context(), c.Query("owner"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// AlwaysNegativeReviewers Q6
// @Summary 只发差评的用户
// @Tags 报表
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/always-negative-reviewers [get]
func (h *Handler) AlwaysNegativeReviewers(c *gin.Context) {
	list, err := h.reportService.AlwaysNegativeReviewers(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}

// NeverNegativeOwners Q7
// @Summary 博文从未收到差评的作者
// @Tags 报表
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/reports/never-negative-owners [get]
func (h *Handler) NeverNegativeOwners(c *gin.Context) {
	list, err := h.reportService.NeverNegativelyCommentedOwners(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, list)
}
