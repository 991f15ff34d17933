package controller

import (
	"errors"
	"net/http"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OAuthController struct {
	*baseController
}

// successPage is shown in the admin's browser after Google redirects back.
// It bounces to the admin dashboard after a short pause.
const successPage = `<html>
  <head>
    <title>Google Authentication Successful</title>
    <meta http-equiv="refresh" content="3;url=/admin/dashboard">
  </head>
  <body>
    <h2>Google Authentication Successful!</h2>
    <p>Your account has been connected. Redirecting to dashboard...</p>
  </body>
</html>`

// AuthorizeURL returns the Google consent screen URL for one configuration.
// The config id travels in the state parameter, so the callback can match the
// exchanged tokens back to the right row.
func (oc OAuthController) AuthorizeURL(ctx *gin.Context) {
	configId := ctx.Param("configId")

	config, err := oc.app.Repository.GoogleAuthConfig.GetById(ctx, nil, configId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Configuration not found", nil, nil)
			return
		}

		oc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	url := oc.app.GmailClient.AuthCodeURL(config)
	oc.app.Logger.Debugf("OAuth: Google, consent URL for config %s: %s", config.ID, url)

	util.ResponseSuccess(ctx, gin.H{
		"url": url,
	})
}

// Callback finishes the consent flow: exchanges the one-time code and stores
// the token set on the configuration identified by state.
func (oc OAuthController) Callback(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google callback")

	code := ctx.Query("code")
	state := ctx.Query("state")

	if code == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Missing authorization code", nil, nil)
		return
	}
	if state == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Missing state parameter", nil, nil)
		return
	}

	config, err := oc.app.Repository.GoogleAuthConfig.GetById(ctx, nil, state)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Invalid state parameter or configuration not found", nil, nil)
			return
		}

		oc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	// A reused code fails here, the provider only redeems it once.
	token, err := oc.app.GmailClient.Exchange(ctx, config, code)
	if err != nil {
		oc.app.Logger.Errorf("OAuth: Google, token exchange failed for config %s: %v", config.ID, err)
		util.ResponseFailed(ctx, http.StatusBadGateway, "Failed to exchange authorization code for token", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := oc.app.Repository.GoogleAuthConfig.SaveTokens(ctx, config.ID, token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		oc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save tokens", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
}
