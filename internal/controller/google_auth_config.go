package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GoogleAuthConfigController struct {
	*baseController
}

// credentialsJSON mirrors the "web" object of a client_secret.json downloaded
// from the Google console, so an admin can paste the file as-is.
type credentialsJSON struct {
	Web struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		ProjectID    string `json:"project_id"`
		AuthURI      string `json:"auth_uri"`
		TokenURI     string `json:"token_uri"`
	} `json:"web"`
}

func (gc GoogleAuthConfigController) List(ctx *gin.Context) {
	configs, err := gc.app.Repository.GoogleAuthConfig.List(ctx, nil)
	if err != nil {
		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"configs": configs,
	})
}

func (gc GoogleAuthConfigController) Create(ctx *gin.Context) {
	type Request struct {
		ClientID     string `json:"clientId" form:"clientId"`
		ClientSecret string `json:"clientSecret" form:"clientSecret"`
		ProjectID    string `json:"projectId" form:"projectId"`
		AuthURI      string `json:"authUri" form:"authUri"`
		TokenURI     string `json:"tokenUri" form:"tokenUri"`

		// CredentialsJSON optionally carries a pasted client_secret.json and
		// overrides the individual fields.
		CredentialsJSON string `json:"credentialsJson" form:"credentialsJson"`
	}
	var body Request

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if body.CredentialsJSON != "" {
		var creds credentialsJSON
		if err := json.Unmarshal([]byte(body.CredentialsJSON), &creds); err != nil || creds.Web.ClientID == "" {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid credentials JSON. Must contain a 'web' object with credentials.", nil, nil)
			return
		}

		body.ClientID = creds.Web.ClientID
		body.ClientSecret = creds.Web.ClientSecret
		body.ProjectID = creds.Web.ProjectID
		body.AuthURI = creds.Web.AuthURI
		body.TokenURI = creds.Web.TokenURI
	}

	if body.ClientID == "" || body.ClientSecret == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Client ID and Secret are required", nil, nil)
		return
	}

	newConfig := model.GoogleAuthConfig{
		ClientID:     body.ClientID,
		ClientSecret: body.ClientSecret,
		ProjectID:    body.ProjectID,
		AuthURI:      body.AuthURI,
		TokenURI:     body.TokenURI,
	}
	if err := gc.app.Repository.GoogleAuthConfig.Create(ctx, nil, &newConfig); err != nil {
		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"config": newConfig,
	})
}

func (gc GoogleAuthConfigController) Update(ctx *gin.Context) {
	type Request struct {
		ClientID     string `json:"clientId" form:"clientId" binding:"required,strNotEmpty"`
		ClientSecret string `json:"clientSecret" form:"clientSecret" binding:"required,strNotEmpty"`
		ProjectID    string `json:"projectId" form:"projectId"`
		AuthURI      string `json:"authUri" form:"authUri"`
		TokenURI     string `json:"tokenUri" form:"tokenUri"`
	}
	var body Request

	configId := ctx.Param("configId")

	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := gc.app.Repository.GoogleAuthConfig.Update(ctx, nil, configId, model.GoogleAuthConfig{
		ClientID:     body.ClientID,
		ClientSecret: body.ClientSecret,
		ProjectID:    body.ProjectID,
		AuthURI:      body.AuthURI,
		TokenURI:     body.TokenURI,
	}); err != nil {
		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (gc GoogleAuthConfigController) Delete(ctx *gin.Context) {
	configId := ctx.Param("configId")

	if err := gc.app.Repository.GoogleAuthConfig.Delete(ctx, nil, configId); err != nil {
		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// Activate makes one configuration the active one; every other row is
// deactivated in the same transaction.
func (gc GoogleAuthConfigController) Activate(ctx *gin.Context) {
	configId := ctx.Param("configId")

	if err := gc.app.Repository.GoogleAuthConfig.Activate(ctx, nil, configId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Configuration not found", nil, nil)
			return
		}

		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (gc GoogleAuthConfigController) Deactivate(ctx *gin.Context) {
	configId := ctx.Param("configId")

	if err := gc.app.Repository.GoogleAuthConfig.Deactivate(ctx, nil, configId); err != nil {
		gc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
