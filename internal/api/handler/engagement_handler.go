package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/api/middleware"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment 给发布添加评论
// @Summary 添加评论
// @Tags 互动
// @Accept json
// @Produce json
// @Param id path string true "发布ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/publications/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.engagement.AddComment(c.Request.Context(), c.Param("id"), middleware.ActorID(c), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comment)
}

// GetComments 发布下的评论（带作者摘要，创建序）
// @Summary 查询评论
// @Tags 互动
// @Param id path string true "发布ID"
// @Success 200 {object} response.Response
// @Router /api/v1/publications/{id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	comments, err := h.engagement.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, comments)
}

// AddLike 点赞（幂等）
// @Summary 点赞
// @Tags 互动
// @Param id path string true "发布ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 404 {object} response.Response
// @Router /api/v1/publications/{id}/likes [put]
func (h *Handler) AddLike(c *gin.Context) {
	created, err := h.engagement.AddLike(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": created})
}

// RemoveLike 取消点赞
// @Summary 取消点赞
// @Tags 互动
// @Param id path string true "发布ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/publications/{id}/likes [delete]
func (h *Handler) RemoveLike(c *gin.Context) {
	deleted, err := h.engagement.RemoveLike(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"unliked": deleted})
}

// IsLiked 当前账号是否点过赞
// @Summary 是否已点赞
// @Tags 互动
// @Param id path string true "发布ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/publications/{id}/likes/me [get]
func (h *Handler) IsLiked(c *gin.Context) {
	liked, err := h.engagement.HasLiked(c.Request.Context(), c.Param("id"), middleware.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": liked})
}

// CountLikes 点赞数
// @Summary 点赞计数
// @Tags 互动
// @Param id path string true "发布ID"
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/publications/{id}/likes/count [get]
func (h *Handler) CountLikes(c *gin.Context) {
	count, err := h.engagement.CountLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}
