// Package handler implements the HTTP endpoints of the box office.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-seating/internal/config"
	"github.com/iliyamo/theater-seating/internal/utils"
)

// AuthHandler issues operator access tokens.
type AuthHandler struct {
	Cfg config.Config
	Log *slog.Logger
}

// NewAuthHandler builds the login handler from the operator settings in cfg.
func NewAuthHandler(cfg config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	Access tokenPart `json:"access"`
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if !utils.VerifyOperator(h.Cfg.OperatorUser, h.Cfg.OperatorPasswordHash, req.Username, req.Password) {
		h.Log.WarnContext(c.Request().Context(), "operator login failed",
			slog.String("username", req.Username), slog.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, req.Username, utils.RoleOperator, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	h.Log.InfoContext(c.Request().Context(), "operator login", slog.String("username", req.Username))
	return c.JSON(http.StatusOK, loginResp{Access: tokenPart{Token: access.Token, Expires: access.Exp}})
}
