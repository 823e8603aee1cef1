package syncflow

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
)

const HTTPAPIFlowName = "HttpApi"

// HTTPAPIFlow reimports an HTTP API from its local OpenAPI definition.
type HTTPAPIFlow struct {
	base
}

func NewHTTPAPIFlow(sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) *HTTPAPIFlow {
	return &HTTPAPIFlow{base: newBase(HTTPAPIFlowName, domain.KindHTTPAPI, sc, id, resource, deps)}
}

func (f *HTTPAPIFlow) Execute(ctx context.Context) error {
	apiID, err := f.resolvePhysicalID()
	if err != nil {
		return err
	}
	body, err := f.readDefinition(domain.PropDefinitionURI)
	if err != nil {
		return err
	}

	err = f.call(ctx, "APIGatewayV2", "ReimportApi", func() error {
		_, callErr := f.deps.APIGatewayV2.ReimportApi(ctx, &apigatewayv2.ReimportApiInput{
			ApiId: aws.String(apiID),
			Body:  aws.String(string(body)),
		})
		return callErr
	})
	if err != nil {
		return err
	}
	f.logger.Infof(ctx, "Reimported HTTP API %s", apiID)
	return nil
}
