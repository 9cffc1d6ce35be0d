package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "gopherpress/internal/app"
	"gopherpress/internal/bootstrap"
	"gopherpress/internal/cache"
	"gopherpress/internal/platform/rabbitmq"
	"gopherpress/internal/repository"
	"gopherpress/internal/transport/http/handler"
	"gopherpress/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	jwtExpiration := time.Duration(app.Config.Auth.JWTExpireMinute) * time.Minute
	revoker := cache.NewTokenRevoker(app.Redis, jwtExpiration)
	publisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	authService := appsvc.NewAuthService(userRepo, revoker, app.Config.Auth.JWTSecret, jwtExpiration)
	postService := appsvc.NewPostService(postRepo, userRepo, publisher)
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)

	authRequired := middleware.AuthJWT(app.Config.Auth.JWTSecret, app.Config.Auth.LoginPath, revoker)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authRequired, authHandler.Me)
	authGroup.POST("/logout", authRequired, authHandler.Logout)

	posts := v1.Group("/posts")
	posts.Use(authRequired)
	posts.GET("", postHandler.Index)
	posts.GET("/create", postHandler.Create)
	posts.POST("", postHandler.Store)
	posts.GET("/:id/edit", postHandler.Edit)
	posts.PUT("/:id", postHandler.Update)
	posts.PATCH("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Destroy)

	return router
}
