// Package router 提供 HTTP 路由配置
package router

import (
	"bedtime-story-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	authHandler *handler.AuthHandler,
	storyHandler *handler.StoryHandler,
	taleHandler *handler.TaleHandler,
	userHandler *handler.UserHandler,
) {
	// 认证管理
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
	}

	// 故事生成与收藏
	stories := v1.Group("/stories")
	{
		stories.POST("/generate", storyHandler.Generate)
		stories.POST("", storyHandler.Save)
		stories.GET("", storyHandler.List)
		stories.PATCH("/:id/rating", storyHandler.UpdateRating)
		stories.DELETE("/:id", storyHandler.Delete)
	}

	// 经典童话目录
	tales := v1.Group("/tales")
	{
		tales.GET("", taleHandler.List)
	}

	// 用户
	users := v1.Group("/users")
	{
		users.GET("/me", userHandler.GetMe)
	}
}
