package route

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/controller"
	"github.com/gin-gonic/gin"
)

// The callback is hit by Google's redirect, so it cannot carry a JWT. The
// consent URL endpoint lives under the admin routes.
func V1_OAuth(r *gin.RouterGroup, oauthController *controller.OAuthController) {
	v1 := r.Group("/v1/oauth")
	{
		v1.GET("/google/callback", oauthController.Callback)
	}
}
