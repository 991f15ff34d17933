package route

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/controller"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Admin(r *gin.RouterGroup, c *controller.Controller, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/admin")
	v1.Use(middleware.AdminAuthMiddleware)
	{
		v1.PATCH("/credentials", c.Auth.UpdateAdminCredentials)

		configs := v1.Group("/configs")
		{
			configs.GET("", c.GoogleAuth.List)
			configs.POST("", c.GoogleAuth.Create)
			configs.PATCH("/:configId", c.GoogleAuth.Update)
			configs.DELETE("/:configId", c.GoogleAuth.Delete)
			configs.POST("/:configId/activate", c.GoogleAuth.Activate)
			configs.POST("/:configId/deactivate", c.GoogleAuth.Deactivate)
			configs.POST("/:configId/authorize-url", c.OAuth.AuthorizeURL)
		}

		tokens := v1.Group("/tokens")
		{
			tokens.GET("", c.AccessToken.List)
			tokens.POST("", c.AccessToken.Create)
			tokens.PATCH("/:tokenId/block", c.AccessToken.SetBlocked)
			tokens.DELETE("/:tokenId", c.AccessToken.Delete)
		}
	}
}
