package web

import (
	"rotationhub/auth"
	"rotationhub/internal/generate"
	"rotationhub/internal/web/api"
	"rotationhub/internal/web/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type WebServer struct {
	router *gin.Engine
}

func NewWebServer(dbConn *pgxpool.Pool, redisClient *redis.Client, JWTSecret string, store api.RotationStore, pub api.RotationPublisher, aiClient generate.Client) *WebServer {
	router := gin.Default()

	authModule := auth.NewAuthModule(dbConn, redisClient, JWTSecret)
	middlewareManager := middleware.NewMiddlewareManager(dbConn, redisClient, authModule)

	api.RegisterAuthRoutes(router, authModule, middlewareManager)
	api.RegisterUserRoutes(router, middlewareManager, dbConn)
	api.RegisterRotationRoutes(router, middlewareManager, store, pub)
	api.RegisterGenerateRoutes(router, middlewareManager, aiClient)

	return &WebServer{router: router}
}

func (ws *WebServer) Start(addr string) {
	ws.router.Run(addr)
}
