package controller

import (
	"net/http"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
)

type AccessTokenController struct {
	*baseController
}

func (ac AccessTokenController) List(ctx *gin.Context) {
	tokens, err := ac.app.Repository.AccessToken.List(ctx, nil)
	if err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"tokens": tokens,
	})
}

// Create registers an access token. When no token is supplied a random one is
// generated and returned to the admin once.
func (ac AccessTokenController) Create(ctx *gin.Context) {
	type Request struct {
		Token       string `json:"token" form:"token"`
		Description string `json:"description" form:"description"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if body.Token == "" {
		token, err := util.GenerateNChar(constant.ACCESS_TOKEN_LENGTH)
		if err != nil {
			ac.app.Logger.Error(err)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
			return
		}

		body.Token = token
	}

	newToken := model.AccessToken{
		Token:       body.Token,
		Description: body.Description,
	}
	if err := ac.app.Repository.AccessToken.Create(ctx, nil, &newToken); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"token": newToken,
	})
}

func (ac AccessTokenController) SetBlocked(ctx *gin.Context) {
	type Request struct {
		IsBlocked *bool `json:"isBlocked" form:"isBlocked" binding:"required"`
	}
	var body Request

	tokenId := ctx.Param("tokenId")

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := ac.app.Repository.AccessToken.SetBlocked(ctx, nil, tokenId, *body.IsBlocked); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (ac AccessTokenController) Delete(ctx *gin.Context) {
	tokenId := ctx.Param("tokenId")

	if err := ac.app.Repository.AccessToken.Delete(ctx, nil, tokenId); err != nil {
		ac.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
