package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"llmboard/internal/handler"
	"llmboard/internal/middleware"
	"llmboard/internal/pkg"
)

func InitRouter(db *gorm.DB, hf *pkg.HFClient) *gin.Engine {
	r := gin.Default()

	benchmark := handler.NewBenchmarkHandler(db)
	upvote := handler.NewUpvoteHandler(db)
	note := handler.NewNoteHandler(db)
	reputation := handler.NewReputationHandler(db)
	catalog := handler.NewCatalogHandler(db)
	sync := handler.NewSyncHandler(db, hf)

	// 全站可匿名访问，带合法令牌则注入身份
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())

	// benchmark相关接口
	benchGroup := api.Group("/benchmarks")
	{
		benchGroup.GET("", benchmark.List)
		benchGroup.POST("", benchmark.Submit)
		benchGroup.POST("/import", benchmark.Import)
		benchGroup.GET("/:id", benchmark.Detail)
		benchGroup.GET("/:id/upvote", upvote.IsVoted)
		benchGroup.GET("/:id/upvotes", upvote.Count)
		benchGroup.GET("/:id/notes", note.List)

		// 点赞和备注要求登录身份
		benchGroup.POST("/:id/upvote", middleware.RequireAuth(), upvote.Toggle)
		benchGroup.POST("/:id/notes", middleware.RequireAuth(), note.Create)
	}

	// 目录相关接口
	api.GET("/hardware", catalog.ListHardware)
	api.GET("/models", catalog.ListModels)

	// 排行榜相关接口
	api.GET("/leaderboard", benchmark.Leaderboard)

	// 用户积分相关接口
	api.GET("/users/:id/reputation", reputation.Profile)

	// 外部调度器触发的元数据回填
	api.GET("/cron/hf-sync", sync.HfSync)

	return r
}
