package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"Nebula_Tube/internal/apperr"
	"Nebula_Tube/internal/dto"
	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/service"
	"Nebula_Tube/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  service.UserService
	tempDir      string
	cookieSecure bool
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewUserHandler(userService service.UserService, tempDir string, cookieSecure bool, accessTTL, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tempDir:      tempDir,
		cookieSecure: cookieSecure,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// setAuthCookies 把一对令牌写进httpOnly cookie；生产环境加Secure+SameSite=Strict
func (h *UserHandler) setAuthCookies(c *gin.Context, pair *service.TokenPair) {
	if h.cookieSecure {
		c.SetSameSite(http.SameSiteStrictMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie("accessToken", pair.AccessToken, int(h.accessTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.SetCookie("refreshToken", pair.RefreshToken, int(h.refreshTTL.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.cookieSecure, true)
}

// Register POST /api/v1/users/register
// multipart表单：avatar文件必填，coverImage文件可选
func (h *UserHandler) Register(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	avatarPath, avatarType := "", ""
	if fh, err := c.FormFile("avatar"); err == nil {
		avatarPath, avatarType, err = saveTempFile(c, fh, h.tempDir)
		if err != nil {
			logCtx.WithError(err).Error("保存上传文件失败")
			respondError(c, apperr.Internal("保存上传文件失败", err))
			return
		}
	}

	coverPath, coverType := "", ""
	if fh, err := c.FormFile("coverImage"); err == nil {
		coverPath, coverType, err = saveTempFile(c, fh, h.tempDir)
		if err != nil {
			// 封面落盘失败时头像已经落盘了，别留垃圾
			os.Remove(avatarPath)
			logCtx.WithError(err).Error("保存上传文件失败")
			respondError(c, apperr.Internal("保存上传文件失败", err))
			return
		}
	}

	user, err := h.userService.Register(c.Request.Context(), &req, avatarPath, avatarType, coverPath, coverType)
	if err != nil {
		logCtx.WithError(err).WithField("username", req.Username).Warn("注册失败")
		respondError(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).WithField("username", user.Username).Info("新用户注册成功")
	respondSuccess(c, http.StatusCreated, user, "注册成功")
}

// Login POST /api/v1/users/login
func (h *UserHandler) Login(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	user, pair, err := h.userService.Login(&req)
	if err != nil {
		logCtx.WithError(err).Warn("登录失败")
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	logCtx.WithField("user_id", user.ID).Info("用户登录成功")
	respondSuccess(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "登录成功")
}

// RefreshToken POST /api/v1/users/refresh-token（刷新令牌只从httpOnly cookie里读）
func (h *UserHandler) RefreshToken(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "RefreshToken")

	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		respondError(c, apperr.Unauthorized("缺少刷新令牌"))
		return
	}

	pair, err := h.userService.RefreshTokens(refreshToken)
	if err != nil {
		logCtx.WithError(err).Warn("刷新令牌失败")
		h.clearAuthCookies(c)
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	respondSuccess(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "令牌已刷新")
}

// Logout POST /api/v1/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.userService.Logout(userID); err != nil {
		respondError(c, err)
		return
	}
	h.clearAuthCookies(c)
	respondSuccess(c, http.StatusOK, nil, "已退出登录")
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetCurrentUser(middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user, "ok")
}

// ResetPassword POST /api/v1/users/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.userService.ResetPassword(userID, req.OldPassword, req.NewPassword); err != nil {
		logCtx.WithError(err).WithField("user_id", userID).Warn("修改密码失败")
		respondError(c, err)
		return
	}
	logCtx.WithField("user_id", userID).Info("密码已修改")
	respondSuccess(c, http.StatusOK, nil, "密码修改成功")
}

// UpdateAccount PATCH /api/v1/users/update-account
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("参数格式不正确"))
		return
	}

	user, err := h.userService.UpdateAccount(middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user, "资料已更新")
}

// UpdateAvatar PATCH /api/v1/users/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.userService.UpdateAvatar)
}

// UpdateCoverImage PATCH /api/v1/users/cover-image
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID uint64, localPath, contentType string) (*dto.UserResponse, error)) {
	logCtx := logger.Log.WithField("handler", "UpdateImage").WithField("field", field)

	fh, err := c.FormFile(field)
	if err != nil {
		respondError(c, apperr.BadRequest("图片文件不能为空"))
		return
	}
	localPath, contentType, err := saveTempFile(c, fh, h.tempDir)
	if err != nil {
		logCtx.WithError(err).Error("保存上传文件失败")
		respondError(c, apperr.Internal("保存上传文件失败", err))
		return
	}

	user, err := update(c.Request.Context(), middleware.CurrentUserID(c), localPath, contentType)
	if err != nil {
		logCtx.WithError(err).Warn("更新图片失败")
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user, "图片已更新")
}

// ChannelProfile GET /api/v1/users/profile/:username（可选认证，登录后带isSubscribed）
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.userService.GetChannelProfile(c.Param("username"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, profile, "ok")
}

// DeleteAccount DELETE /api/v1/users/delete-account
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	logCtx := logger.Log.WithField("handler", "DeleteAccount")

	userID := middleware.CurrentUserID(c)
	if err := h.userService.DeleteAccount(userID); err != nil {
		logCtx.WithError(err).WithField("user_id", userID).Error("注销账号失败")
		respondError(c, err)
		return
	}
	h.clearAuthCookies(c)
	logCtx.WithField("user_id", userID).Info("账号已注销")
	respondSuccess(c, http.StatusOK, nil, "账号已注销")
}
