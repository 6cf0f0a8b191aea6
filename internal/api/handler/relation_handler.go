package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/api/middleware"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

type followRequest struct {
	Username string `json:"username" binding:"required"`
}

// Follow 关注目标账号
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "目标用户名"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	created, err := h.relations.Follow(c.Request.Context(), middleware.ActorID(c), req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"followed": created})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "目标用户名"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deleted, err := h.relations.Unfollow(c.Request.Context(), middleware.ActorID(c), req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"unfollowed": deleted})
}

// IsFollowing 当前账号是否关注目标
// @Summary 是否已关注
// @Tags 关系链
// @Param username path string true "目标用户名"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/{username}/is-following [get]
func (h *Handler) IsFollowing(c *gin.Context) {
	following, err := h.relations.IsFollowing(c.Request.Context(), middleware.ActorID(c), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"following": following})
}

// Followers 查询粉丝列表
// @Summary 查询粉丝
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/{username}/followers [get]
func (h *Handler) Followers(c *gin.Context) {
	list, err := h.relations.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// Followed 查询关注列表
// @Summary 查询关注的人
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/relations/{username}/followed [get]
func (h *Handler) Followed(c *gin.Context) {
	list, err := h.relations.Followed(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// Suggestions 未关注账号推荐
// @Summary 推荐未关注的账号
// @Tags 关系链
// @Success 200 {object} response.Response
// @Router /api/v1/suggestions [get]
func (h *Handler) Suggestions(c *gin.Context) {
	list, err := h.relations.SuggestUnfollowed(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}
