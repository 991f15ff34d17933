package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	appcontext "github.com/Vikramsingh92639/email-nexus-netflix/internal/app_context"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/auth"
	"github.com/gin-gonic/gin"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index       *IndexController
	Auth        *AuthController
	OAuth       *OAuthController
	GoogleAuth  *GoogleAuthConfigController
	AccessToken *AccessTokenController
	Email       *EmailController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:       &IndexController{baseController: bc},
		Auth:        &AuthController{baseController: bc},
		OAuth:       &OAuthController{baseController: bc},
		GoogleAuth:  &GoogleAuthConfigController{baseController: bc},
		AccessToken: &AccessTokenController{baseController: bc},
		Email:       &EmailController{baseController: bc},
	}
}

func (b *baseController) getAuthAdmin(ctx *gin.Context) (*auth.JWTPayload, error) {
	admin, exists := ctx.Get("admin")
	if !exists {
		return nil, errors.New("admin not found in context")
	}

	jsonAdmin, err := json.Marshal(admin)
	if err != nil {
		return nil, err
	}

	var authAdmin *auth.JWTPayload
	err = json.Unmarshal(jsonAdmin, &authAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin: %w", err)
	}

	return authAdmin, nil
}
