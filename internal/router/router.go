package router

import (
	"plume/internal/handlers"
	"plume/internal/middleware"
	"plume/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes 装配 JSON API 路由
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(db))
	likeHandler := handlers.NewLikeHandler(services.NewLikeService(db))
	viewHandler := handlers.NewViewHandler(services.NewViewService(db))

	api := r.Group("/api")
	api.Use(middleware.LoadAdmin())
	{
		// 评论 (无 identifier 的 GET 在 handler 内部要求管理员身份)
		api.GET("/comments", commentHandler.List)
		api.POST("/comments", commentHandler.Create)
		api.POST("/comments/like", likeHandler.ToggleCommentLike)

		// 文章点赞计数器
		api.GET("/like", likeHandler.GetPostLikes)
		api.POST("/like", likeHandler.AdjustPostLikes)

		// 浏览量
		api.GET("/views", viewHandler.GetTotal)
		api.POST("/views", viewHandler.Record)

		// 管理员专属 (未带有效身份时 403 拒绝)
		admin := api.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.DELETE("/comments", commentHandler.Delete)
			admin.PUT("/comments/flag", commentHandler.SetFlag)
			admin.PUT("/comments/status", commentHandler.SetStatus)
			admin.GET("/admin/daily-views", viewHandler.DailySeries)
		}
	}
}
