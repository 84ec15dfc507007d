package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/container"
)

// Quiz sessions live in the container's store, so they survive only as long
// as a warm Lambda instance. Results go to DATABASE_DSN when it is set.
func main() {
	settings, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load configuration")
	}
	config.InitLogger(settings.Env, settings.LogLevel)

	c, err := container.New(context.Background(), settings)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build container")
	}

	adapter := httpadapter.New(c.Handler())
	lambda.Start(adapter.ProxyWithContext)
}
