package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/TWEEDOriginal/serverless-intro/internal/config"
	"github.com/TWEEDOriginal/serverless-intro/pkg/lambda"
	"github.com/TWEEDOriginal/serverless-intro/pkg/server"
)

type apiGatewayHandler func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func newHandler(container *server.Container) apiGatewayHandler {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := lambda.FromAPIGateway(ctx, event)
		if err != nil {
			container.Logger.WithError(err).WithFields(logrus.Fields{
				"method": event.HTTPMethod,
				"path":   event.Path,
			}).Warn("Rejected undecodable event")

			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    lambda.JSONHeaders(),
				Body:       `{"error":"Invalid request","message":"request body could not be decoded"}`,
			}, nil
		}

		return lambda.ToAPIGateway(container.Router.Route(ctx, req)), nil
	}
}

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	container, err := server.NewContainer(context.Background(), cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize container")
	}

	container.Logger.WithFields(logrus.Fields{
		"table":   cfg.Storage.TableName,
		"region":  cfg.Storage.Region,
		"backend": cfg.Storage.Backend,
		"mode":    config.DetectServerless().DeploymentMode(),
	}).Info("Product inventory function initialized")

	awslambda.Start(newHandler(container))
}
