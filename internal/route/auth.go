package route

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/controller"
	"github.com/gin-gonic/gin"
)

func V1_Auth(r *gin.RouterGroup, authController *controller.AuthController) {
	v1 := r.Group("/v1/auth")
	{
		v1.POST("/admin/login", authController.AdminLogin)
		v1.POST("/jwt/access/verify", authController.VerifyJwtAccessToken)
		v1.POST("/jwt/refresh", authController.RefreshAccessToken)
		v1.POST("/token/verify", authController.VerifyAccessToken)
	}
}
