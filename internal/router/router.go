package router

import (
	"Nebula_Tube/internal/handler"
	"Nebula_Tube/internal/middleware"
	"Nebula_Tube/internal/model"
	"Nebula_Tube/internal/repository"
	"Nebula_Tube/pkg/token"

	"github.com/gin-gonic/gin"
)

// Handlers 汇集所有handler，由main装配后交给Setup注册路由
type Handlers struct {
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Comment      *handler.CommentHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Playlist     *handler.PlaylistHandler
	Tweet        *handler.TweetHandler
	Watch        *handler.WatchHandler
	Dashboard    *handler.DashboardHandler
}

// Setup 注册全部路由。约定：写操作一律强制认证；读操作公开，
// 个别读接口用可选认证带出"我是否点过赞/订阅过"这类个性化字段
func Setup(h *Handlers, tokenMgr *token.Manager, userRepo repository.UserRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	auth := middleware.Auth(tokenMgr, userRepo)
	optionalAuth := middleware.OptionalAuth(tokenMgr, userRepo)

	r.GET("/healthcheck", handler.Healthcheck)

	api := r.Group("/api/v1")

	users := api.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh-token", h.User.RefreshToken)
		users.POST("/logout", auth, h.User.Logout)
		users.GET("/me", auth, h.User.Me)
		users.POST("/reset-password", auth, h.User.ResetPassword)
		users.PATCH("/update-account", auth, h.User.UpdateAccount)
		users.PATCH("/avatar", auth, h.User.UpdateAvatar)
		users.PATCH("/cover-image", auth, h.User.UpdateCoverImage)
		users.GET("/profile/:username", optionalAuth, h.User.ChannelProfile)
		users.DELETE("/delete-account", auth, h.User.DeleteAccount)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", h.Video.Feed)
		videos.POST("", auth, h.Video.Upload)
		videos.GET("/user/:username", h.Video.UserFeed)
		videos.GET("/:id", h.Video.Detail)
		videos.PATCH("/:id", auth, h.Video.Update)
		videos.DELETE("/:id", auth, h.Video.Delete)
		videos.POST("/:id/like", auth, h.Like.Toggle(model.TargetVideo))
		videos.GET("/:id/like", optionalAuth, h.Like.Status(model.TargetVideo))
	}

	comments := api.Group("/comments")
	{
		comments.GET("/video/:videoId", h.Comment.ListByVideo)
		comments.POST("/video/:videoId", auth, h.Comment.Add)
		comments.GET("/:id/replies", h.Comment.ListReplies)
		comments.PATCH("/:id", auth, h.Comment.Update)
		comments.DELETE("/:id", auth, h.Comment.Delete)
		comments.POST("/:id/like", auth, h.Like.Toggle(model.TargetComment))
		comments.GET("/:id/like", optionalAuth, h.Like.Status(model.TargetComment))
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/channel/:channelId", auth, h.Subscription.Toggle)
		subscriptions.GET("/channel/:channelId", optionalAuth, h.Subscription.Status)
		subscriptions.GET("/channel/:channelId/subscribers", h.Subscription.Subscribers)
		subscriptions.GET("/me", auth, h.Subscription.MyChannels)
	}

	playlists := api.Group("/playlists")
	{
		playlists.POST("", auth, h.Playlist.Create)
		playlists.GET("/me", auth, h.Playlist.Mine)
		playlists.GET("/:id", h.Playlist.Detail)
		playlists.PATCH("/:id", auth, h.Playlist.Update)
		playlists.DELETE("/:id", auth, h.Playlist.Delete)
		playlists.POST("/:id/videos/:videoId", auth, h.Playlist.AddVideo)
		playlists.DELETE("/:id/videos/:videoId", auth, h.Playlist.RemoveVideo)
	}

	tweets := api.Group("/tweets")
	{
		tweets.POST("", auth, h.Tweet.Create)
		tweets.GET("", h.Tweet.PublicFeed)
		tweets.GET("/following", auth, h.Tweet.FollowingFeed)
		tweets.GET("/user/:username", h.Tweet.UserFeed)
		tweets.DELETE("/:id", auth, h.Tweet.Delete)
		tweets.POST("/:id/like", auth, h.Like.Toggle(model.TargetTweet))
		tweets.GET("/:id/like", optionalAuth, h.Like.Status(model.TargetTweet))
	}

	watch := api.Group("/watch-history", auth)
	{
		watch.POST("/:videoId", h.Watch.Watch)
		watch.GET("", h.Watch.History)
		watch.DELETE("/:videoId", h.Watch.DeleteOne)
		watch.DELETE("", h.Watch.DeleteAll)
	}

	api.GET("/dashboard", auth, h.Dashboard.Stats)
	api.GET("/search", h.Dashboard.Search)

	return r
}
