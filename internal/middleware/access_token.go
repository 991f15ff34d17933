package middleware

import (
	"errors"
	"net/http"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccessTokenMiddleware guards user routes with the opaque application access
// token an admin handed out. Blocked tokens are rejected.
func (m Middleware) AccessTokenMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read access token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		ctx.Abort()
		return
	}

	accessToken, err := m.app.Repository.AccessToken.GetByToken(ctx, nil, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token", nil, nil)
		} else {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		}
		ctx.Abort()
		return
	}

	if accessToken.IsBlocked {
		util.ResponseFailed(ctx, http.StatusForbidden, "Access token is blocked", nil, nil)
		ctx.Abort()
		return
	}

	ctx.Set("accessToken", accessToken)
	ctx.Next()
}
