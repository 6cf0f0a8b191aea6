package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/socialgraph/internal/api/middleware"
	"github.com/d60-Lab/socialgraph/internal/service"
	"github.com/d60-Lab/socialgraph/pkg/response"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 注册账号
// @Summary 注册账号
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, h.userView(u))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 登录并签发 token
// @Summary 登录
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

// GetUser 按 id 或 username 查账号
// @Summary 查询账号
// @Tags 账号
// @Param id query string false "账号ID"
// @Param username query string false "用户名"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Query("id")
	username := c.Query("username")
	if id == "" && username == "" {
		response.BadRequest(c, "id or username required")
		return
	}
	u, err := h.accounts.Get(c.Request.Context(), id, username)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, h.userView(u))
}

// SearchUsers 按昵称模糊搜索
// @Summary 搜索账号
// @Tags 账号
// @Param q query string true "昵称子串（大小写不敏感）"
// @Success 200 {object} response.Response
// @Router /api/v1/users/search [get]
func (h *Handler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "q required")
		return
	}
	users, err := h.accounts.Search(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = h.userView(u)
	}
	response.Success(c, views)
}

type updateUserRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	SiteWeb         string `json:"site_web"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=6"`
}

// UpdateUser 更新资料或改密
// @Summary 更新当前账号
// @Tags 账号
// @Accept json
// @Produce json
// @Param request body updateUserRequest true "更新内容"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/users/me [patch]
func (h *Handler) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	err := h.accounts.Update(c.Request.Context(), middleware.ActorID(c), service.UpdateInput{
		Name:            req.Name,
		Description:     req.Description,
		SiteWeb:         req.SiteWeb,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
