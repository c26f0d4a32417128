package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cihai_ugc_202508/internal/app"
	"cihai_ugc_202508/internal/config"
	"cihai_ugc_202508/pkg/logger"
)

var ginLambda *ginadapter.GinLambda

// 冷启动时组装一次，之后的调用复用连接
func init() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log := logger.MustInit(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	gin.SetMode(gin.ReleaseMode)

	a, err := app.Build(context.Background(), cfg, log, app.Options{Serverless: true})
	if err != nil {
		log.Fatal("应用初始化失败", zap.Error(err))
	}
	ginLambda = ginadapter.New(a.Engine)
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
