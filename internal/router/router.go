package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Content_Service/internal/handler"
	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

// Deps are the services and settings the route table is built from.
type Deps struct {
	Communities *service.CommunityService
	Posts       *service.PostService
	Comments    *service.CommentService
	Likes       *service.LikeService
	Events      *service.EventService
	Media       *service.MediaService
	Health      handler.Pinger

	// Tokens enables bearer auth on write routes when non-nil.
	Tokens      *pkg.TokenIssuer
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	Log         *zap.Logger
}

func InitRouter(d Deps) *gin.Engine {
	pkg.RegisterJSONTagNames()
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Logger(d.Log), middleware.Recovery(d.Log), middleware.CORS(d.CORSOrigins))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware())
	}

	community := handler.NewCommunityHandler(d.Communities)
	post := handler.NewPostHandler(d.Posts, d.Media.MaxBytes())
	comment := handler.NewCommentHandler(d.Comments)
	like := handler.NewLikeHandler(d.Likes)
	event := handler.NewEventHandler(d.Events)
	media := handler.NewMediaHandler(d.Media)
	health := handler.NewHealthHandler(d.Health)

	auth := middleware.AuthMiddleware(d.Tokens)

	api := r.Group("/api/v1")
	api.GET("/healthz", health.Check)

	mediaGroup := api.Group("/media")
	{
		mediaGroup.POST("/upload", auth, media.Upload)
	}

	communityGroup := api.Group("/communities")
	{
		communityGroup.POST("", auth, community.Create)
		communityGroup.GET("", community.List)
		communityGroup.GET("/:id", community.Get)
		communityGroup.DELETE("/:id", auth, community.Delete)
		communityGroup.GET("/:id/posts", community.ListPosts)
		communityGroup.GET("/:id/events", community.ListEvents)
	}

	postGroup := api.Group("/posts")
	{
		postGroup.POST("", auth, post.CreatePost)
		postGroup.GET("", post.ListPosts)
		postGroup.GET("/search", post.SearchPosts)
		postGroup.GET("/by-title", post.GetPostByTitle)
		postGroup.GET("/:id", post.GetPost)
		postGroup.PUT("/:id", auth, post.UpdatePost)
		postGroup.DELETE("/:id", auth, post.DeletePost)
		postGroup.GET("/:id/comments", comment.ListByPost)
		postGroup.GET("/:id/likes/count", like.PostCount)
	}

	commentGroup := api.Group("/comments")
	{
		commentGroup.POST("", auth, comment.Add)
		commentGroup.DELETE("/:id", auth, comment.Delete)
		commentGroup.GET("/:id/likes/count", like.CommentCount)
	}

	likeGroup := api.Group("/likes")
	likeGroup.Use(auth)
	{
		likeGroup.POST("/post", like.LikePost)
		likeGroup.POST("/comment", like.LikeComment)
	}

	eventGroup := api.Group("/events")
	{
		eventGroup.POST("", auth, event.Create)
		eventGroup.GET("", event.List)
		eventGroup.GET("/:id", event.Get)
		eventGroup.PUT("/:id", auth, event.Update)
		eventGroup.DELETE("/:id", auth, event.Delete)
	}

	return r
}
