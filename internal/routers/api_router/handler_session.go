package api_router

import (
	"github.com/quickpost/post-sync-service/internal/app"
	"github.com/quickpost/post-sync-service/internal/dto"
	pkgapp "github.com/quickpost/post-sync-service/pkg/app"
	"github.com/quickpost/post-sync-service/pkg/code"
	apperrors "github.com/quickpost/post-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler session API router handler
// SessionHandler 会话 API 路由处理器
type SessionHandler struct {
	*Handler
}

// NewSessionHandler creates SessionHandler instance
// NewSessionHandler 创建 SessionHandler 实例
func NewSessionHandler(a *app.App) *SessionHandler {
	return &SessionHandler{
		Handler: NewHandler(a),
	}
}

// SendCode issues a one-time login code
// @Summary Request a one-time login code
// @Description Issues an 8-digit code to the email; repeated requests inside the cooldown window are rejected.
// @Description 为邮箱签发 8 位验证码；冷却期内的重复请求会被拒绝。
// @Tags Session
// @Accept json
// @Produce json
// @Param params body dto.SendCodeRequest true "Email"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 429 {object} pkgapp.Res "Rate Limited"
// @Router /api/session/send-code [post]
func (h *SessionHandler) SendCode(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SendCodeRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.SendCode.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.SessionService.SendCode(ctx, params); err != nil {
		h.logError(ctx, "SessionHandler.SendCode", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Login exchanges a one-time code for a session token
// @Summary Log in with a one-time code
// @Description Malformed, wrong, expired and exhausted codes all yield the same unauthorized response.
// @Description 格式错误、验证码错误、过期和次数耗尽返回完全相同的未授权响应。
// @Tags Session
// @Accept json
// @Produce json
// @Param params body dto.LoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.SessionDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LoginRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SessionHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()
	clientIP := pkgapp.GetRequestIP(c)

	sessionDTO, err := h.App.SessionService.Login(ctx, params, clientIP)
	if err != nil {
		h.logError(ctx, "SessionHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(sessionDTO))
}

// Logout ends the current session
// @Summary Log out
// @Description Session tokens are stateless; the server acknowledges and the client discards the token.
// @Description 会话凭证无状态；服务端确认后由客户端丢弃 Token。
// @Tags Session
// @Produce json
// @Success 200 {object} pkgapp.Res "Success"
// @Router /api/session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success)
}

// Info returns the current session's user info
// @Summary Get session info
// @Tags Session
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SessionDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/session [get]
func (h *SessionHandler) Info(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	sessionDTO, err := h.App.SessionService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "SessionHandler.Info", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(sessionDTO))
}
