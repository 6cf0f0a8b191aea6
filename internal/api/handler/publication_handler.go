package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/api/middleware"
	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

// GetPublications 某账号全部发布，时间倒序
// @Summary 查询账号的发布
// @Tags 发布
// @Param username query string true "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/publications [get]
func (h *Handler) GetPublications(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.BadRequest(c, "username required")
		return
	}
	pubs, err := h.feeds.Publications(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, h.publicationViews(pubs))
}

// GetFeed 关注账号的最近发布（读时扇出，单源上限 5 条）
// @Summary 查询个人 feed
// @Tags 发布
// @Success 200 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	pubs, err := h.feeds.Feed(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, h.publicationViews(pubs))
}

// uploadResult 上传类变更的结构化结果，status=false 表示无任何变更
type uploadResult struct {
	Status bool    `json:"status"`
	URL    *string `json:"url"`
}

// Publish 上传媒体并创建发布
// @Summary 发布媒体
// @Tags 发布
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "媒体文件"
// @Success 200 {object} response.Response{data=uploadResult}
// @Router /api/v1/publications [post]
func (h *Handler) Publish(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer f.Close()

	_, ref, err := h.media.PublishMedia(c.Request.Context(), middleware.ActorID(c),
		f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrUploadFailed) {
			c.JSON(http.StatusOK, response.Response{Code: 0, Message: "ok", Data: uploadResult{Status: false, URL: nil}})
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, uploadResult{Status: true, URL: &ref.URL})
}

// UploadAvatar 替换头像（旧对象 best-effort 先删）
// @Summary 上传头像
// @Tags 账号
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "头像文件"
// @Success 200 {object} response.Response{data=uploadResult}
// @Router /api/v1/users/me/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file required")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer f.Close()

	ref, err := h.media.ReplaceAvatar(c.Request.Context(), middleware.ActorID(c), f, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, service.ErrUploadFailed) {
			c.JSON(http.StatusOK, response.Response{Code: 0, Message: "ok", Data: uploadResult{Status: false, URL: nil}})
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, uploadResult{Status: true, URL: &ref.URL})
}

// DeleteAvatar 清空头像引用（对象删除为 best-effort）
// @Summary 删除头像
// @Tags 账号
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/users/me/avatar [delete]
func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.media.ClearAvatar(c.Request.Context(), middleware.ActorID(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
