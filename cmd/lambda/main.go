// Lambda entrypoint. The container is built once in init and reused across
// invocations; API Gateway events are translated to standard HTTP requests
// by the chi adapter.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"fermentlog-backend/infrastructure/di"
)

var adapter *chiadapter.ChiLambdaV2

func init() {
	container, _, err := di.NewContainer(context.Background())
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	adapter = chiadapter.NewV2(container.Router)
}

// handler copies the gateway-verified JWT claims into trusted identity
// headers before proxying. The auth middleware reads these instead of
// re-validating the token.
func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.RequestContext.Authorizer != nil && req.RequestContext.Authorizer.JWT != nil {
		claims := req.RequestContext.Authorizer.JWT.Claims
		if req.Headers == nil {
			req.Headers = map[string]string{}
		}
		if sub, ok := claims["sub"]; ok {
			req.Headers["x-user-id"] = sub
		}
		if email, ok := claims["email"]; ok {
			req.Headers["x-user-email"] = email
		}
	}
	return adapter.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(handler)
}
