package api

import (
	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 用户注册、登录与账号管理
type AuthHandler struct {
	cfg   *config.Config
	store *service.CredentialStore
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:   cfg,
		store: service.NewCredentialStore(database.DB),
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"password123"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Message string      `json:"message" example:"User registered successfully"`
	User    models.User `json:"user"`
}

// LoginRequest 登录请求，username 可为用户名或邮箱
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Message     string      `json:"message" example:"Login successful"`
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// UserResponse 当前用户
type UserResponse struct {
	User models.User `json:"user"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"password123"`
	NewPassword string `json:"new_password" example:"newpassword123"`
}

// DeleteAccountRequest 注销账号请求
type DeleteAccountRequest struct {
	Password string `json:"password" example:"password123"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户，用户名与邮箱均需唯一
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} RegisterResponse "注册成功"
// @Failure 400 {object} ErrorResponse "参数错误或用户已存在"
// @Router /api/users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		BadRequest(c, "Missing required fields")
		return
	}

	user, err := h.store.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	Created(c, RegisterResponse{Message: "User registered successfully", User: *user})
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用用户名或邮箱登录，返回 JWT access token
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} LoginResponse "登录成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "用户名或密码错误"
// @Failure 429 {object} ErrorResponse "登录过于频繁"
// @Router /api/users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		BadRequest(c, "Missing username or password")
		return
	}

	user, err := h.store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	Success(c, LoginResponse{
		Message:     "Login successful",
		AccessToken: token,
		User:        *user,
	})
}

// Me 获取当前用户
// @Summary 获取当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse "获取成功"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "用户不存在"
// @Router /api/users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.store.Get(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	Success(c, UserResponse{User: *user})
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} MessageResponse "修改成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "原密码错误"
// @Router /api/users/me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		BadRequest(c, "Missing required fields")
		return
	}

	err := h.store.ChangePassword(c.Request.Context(), middleware.GetCurrentUserID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	SuccessWithMessage(c, "Password updated successfully")
}

// DeleteAccount 注销账号，同时删除全部收支记录与预算
// @Summary 注销账号
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteAccountRequest true "当前密码"
// @Success 200 {object} MessageResponse "注销成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 401 {object} ErrorResponse "密码错误"
// @Router /api/users/me [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		BadRequest(c, "Password is required")
		return
	}

	if err := h.store.Delete(c.Request.Context(), middleware.GetCurrentUserID(c), req.Password); err != nil {
		respondError(c, err, "User not found")
		return
	}

	SuccessWithMessage(c, "Account deleted successfully")
}
