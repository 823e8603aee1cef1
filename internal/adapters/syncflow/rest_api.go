package syncflow

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/core/ports"
)

const RestAPIFlowName = "RestApi"

// RestAPIFlow overwrites a REST API with its local OpenAPI definition and
// redeploys the stage when one is declared.
type RestAPIFlow struct {
	base
}

func NewRestAPIFlow(sc ports.SyncContext, id domain.ResourceIdentifier, resource domain.Resource, deps Dependencies) *RestAPIFlow {
	return &RestAPIFlow{base: newBase(RestAPIFlowName, domain.KindRestAPI, sc, id, resource, deps)}
}

func (f *RestAPIFlow) Execute(ctx context.Context) error {
	apiID, err := f.resolvePhysicalID()
	if err != nil {
		return err
	}
	body, err := f.readDefinition(domain.PropDefinitionURI)
	if err != nil {
		return err
	}

	err = f.call(ctx, "APIGateway", "PutRestApi", func() error {
		_, callErr := f.deps.APIGateway.PutRestApi(ctx, &apigateway.PutRestApiInput{
			RestApiId: aws.String(apiID),
			Body:      body,
			Mode:      types.PutModeOverwrite,
		})
		return callErr
	})
	if err != nil {
		return err
	}

	stage := f.stringProperty(domain.PropStageName)
	if stage == "" {
		f.logger.Infof(ctx, "Updated REST API %s", apiID)
		return nil
	}
	err = f.call(ctx, "APIGateway", "CreateDeployment", func() error {
		_, callErr := f.deps.APIGateway.CreateDeployment(ctx, &apigateway.CreateDeploymentInput{
			RestApiId: aws.String(apiID),
			StageName: aws.String(stage),
		})
		return callErr
	})
	if err != nil {
		return err
	}
	f.logger.Infof(ctx, "Updated REST API %s and deployed stage %s", apiID, stage)
	return nil
}
