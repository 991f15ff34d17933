package route

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/controller"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/middleware"
	"github.com/gin-gonic/gin"
)

func V1_Emails(r *gin.RouterGroup, emailController *controller.EmailController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/emails")
	v1.Use(middleware.AccessTokenMiddleware)
	{
		v1.POST("/search", emailController.SearchEmails)
		v1.GET("", emailController.ListEmails)
		v1.PATCH("/:emailId/visibility", emailController.ToggleVisibility)
	}
}
