package controller

import (
	"errors"
	"net/http"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/auth"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	*baseController
}

func (ac AuthController) AdminLogin(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username" form:"username" binding:"required,strNotEmpty"`
		Password string `json:"password" form:"password" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	admin, err := ac.app.Repository.Admin.GetByUsername(ctx, nil, body.Username)
	if err != nil {
		ac.app.Logger.Debugf("Admin login failed for %s: %v", body.Username, err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid username or password", nil, nil)
		return
	}

	if !auth.VerifyPassword(body.Password, admin.PasswordHash) {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid username or password", nil, nil)
		return
	}

	refreshToken, accessToken, err := ac.app.JWTService.GenerateRefreshAndAccessToken(auth.JWTPayload{
		ID:       admin.ID,
		Username: admin.Username,
	})
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
	})
}

func (ac AuthController) VerifyJwtAccessToken(ctx *gin.Context) {
	type Request struct {
		Token string `json:"token" form:"token" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	// Keep in mind that verify jwt token does not check database.
	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(body.Token)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), gin.H{
			"tokenValid": false,
		})
		return
	}

	if jwtClaims == nil || jwtClaims.Type != constant.JWT_TYPE_ACCESS {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), gin.H{
			"tokenValid": false,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokenValid": true,
		"payload":    jwtClaims,
	})
}

func (ac AuthController) RefreshAccessToken(ctx *gin.Context) {
	refreshToken, err := util.ReadRefreshToken(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	jwtClaims, err := ac.app.JWTService.VerifyJwtToken(refreshToken)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if jwtClaims == nil || jwtClaims.Type != constant.JWT_TYPE_REFRESH {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("invalid jwt token type")), nil)
		return
	}

	// The admin row may have been renamed or removed since the token was issued.
	admin, err := ac.app.Repository.Admin.GetById(ctx, nil, jwtClaims.Admin.ID)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	newRefreshToken, newAccessToken, err := ac.app.JWTService.GenerateRefreshAndAccessToken(auth.JWTPayload{
		ID:       admin.ID,
		Username: admin.Username,
	})
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": newRefreshToken,
		"accessToken":  newAccessToken,
	})
}

// VerifyAccessToken is the user-side login: present an application access
// token, learn whether it is valid and usable.
func (ac AuthController) VerifyAccessToken(ctx *gin.Context) {
	type Request struct {
		Token string `json:"token" form:"token" binding:"required,strNotEmpty"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	accessToken, err := ac.app.Repository.AccessToken.GetByToken(ctx, nil, body.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token", nil, gin.H{
				"tokenValid": false,
			})
			return
		}

		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if accessToken.IsBlocked {
		util.ResponseFailed(ctx, http.StatusForbidden, "Access token is blocked", nil, gin.H{
			"tokenValid": false,
		})
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokenValid": true,
	})
}

// UpdateAdminCredentials lets the signed-in admin rotate username and password.
func (ac AuthController) UpdateAdminCredentials(ctx *gin.Context) {
	type Request struct {
		Username string `json:"username" form:"username" binding:"required,strNotEmpty,cmax=100"`
		Password string `json:"password" form:"password" binding:"required,cmin=8,cmax=128"`
	}
	var body Request

	admin, err := ac.getAuthAdmin(ctx)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	passwordHash, err := auth.HashPassword(body.Password)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ac.app.Repository.Admin.UpdateCredentials(ctx, nil, admin.ID, body.Username, passwordHash); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
