package syncflow

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/stack-sync/internal/core/domain"
	"github.com/olusolaa/stack-sync/internal/errors"
	"github.com/olusolaa/stack-sync/mocks"
)

const openAPIBody = "openapi: 3.0.1\npaths: {}\n"

func TestRestAPIFlow_PutAndDeploy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "api", "openapi.yaml"), openAPIBody)

	client := new(mocks.MockAPIGatewayClient)
	deps := baseDeps()
	deps.APIGateway = client

	client.On("PutRestApi", mock.Anything, &apigateway.PutRestApiInput{
		RestApiId: aws.String("a1b2c3"),
		Body:      []byte(openAPIBody),
		Mode:      types.PutModeOverwrite,
	}, mock.Anything).Return(&apigateway.PutRestApiOutput{}, nil).Once()
	client.On("CreateDeployment", mock.Anything, &apigateway.CreateDeploymentInput{
		RestApiId: aws.String("a1b2c3"),
		StageName: aws.String("prod"),
	}, mock.Anything).Return(&apigateway.CreateDeploymentOutput{}, nil).Once()

	sc := newSyncContext(dir, map[string]string{"Stage": "prod"}, domain.PhysicalIDMapping{"RestApi": "a1b2c3"})
	f := NewRestAPIFlow(sc, domain.NewResourceIdentifier("", "RestApi"), domain.Resource{
		Type: domain.TypeServerlessAPI,
		Properties: map[string]any{
			domain.PropDefinitionURI: "api/openapi.yaml",
			domain.PropStageName:     map[string]any{"Ref": "Stage"},
		},
	}, deps)

	require.NoError(t, f.Execute(context.Background()))
	assert.Equal(t, "a1b2c3", f.PhysicalID())
	client.AssertExpectations(t)
}

func TestRestAPIFlow_NoStage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "openapi.json"), `{"openapi":"3.0.1"}`)

	client := new(mocks.MockAPIGatewayClient)
	deps := baseDeps()
	deps.APIGateway = client
	client.On("PutRestApi", mock.Anything, mock.Anything, mock.Anything).Return(&apigateway.PutRestApiOutput{}, nil).Once()

	sc := newSyncContext(dir, nil, domain.PhysicalIDMapping{"RestApi": "a1b2c3"})
	f := NewRestAPIFlow(sc, domain.NewResourceIdentifier("", "RestApi"), domain.Resource{
		Type:       domain.TypeAPIGatewayRestAPI,
		Properties: map[string]any{domain.PropDefinitionURI: "openapi.json"},
	}, deps)

	require.NoError(t, f.Execute(context.Background()))
	client.AssertNotCalled(t, "CreateDeployment", mock.Anything, mock.Anything, mock.Anything)
}

func TestRestAPIFlow_DefinitionProblems(t *testing.T) {
	tests := []struct {
		name      string
		props     map[string]any
		infraSync bool
	}{
		{"inline body", map[string]any{domain.PropDefinitionBody: map[string]any{"openapi": "3.0.1"}}, true},
		{"remote uri", map[string]any{domain.PropDefinitionURI: "s3://bucket/openapi.yaml"}, true},
		{"no definition", map[string]any{}, true},
		{"missing file", map[string]any{domain.PropDefinitionURI: "missing.yaml"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockAPIGatewayClient)
			deps := baseDeps()
			deps.APIGateway = client
			sc := newSyncContext(t.TempDir(), nil, domain.PhysicalIDMapping{"RestApi": "a1b2c3"})

			f := NewRestAPIFlow(sc, domain.NewResourceIdentifier("", "RestApi"), domain.Resource{Type: domain.TypeServerlessAPI, Properties: tt.props}, deps)
			err := f.Execute(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.infraSync, errors.Is(err, errors.CodeInfraSyncRequired))
			if !tt.infraSync {
				assert.True(t, errors.Is(err, errors.CodeArtifactError))
			}
			client.AssertNotCalled(t, "PutRestApi", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHTTPAPIFlow_Reimport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "child", "http.yaml"), openAPIBody)

	client := new(mocks.MockAPIGatewayV2Client)
	deps := baseDeps()
	deps.APIGatewayV2 = client
	client.On("ReimportApi", mock.Anything, &apigatewayv2.ReimportApiInput{
		ApiId: aws.String("h77"),
		Body:  aws.String(openAPIBody),
	}, mock.Anything).Return(&apigatewayv2.ReimportApiOutput{}, nil).Once()

	sc := newSyncContext(dir, nil, domain.PhysicalIDMapping{"Child/HttpApi": "h77"})
	sc.stacks = append(sc.stacks, domain.Stack{Name: "Child", Location: filepath.Join(dir, "child", "template.json")})
	f := NewHTTPAPIFlow(sc, domain.NewResourceIdentifier("Child", "HttpApi"), domain.Resource{
		Type:       domain.TypeServerlessHTTPAPI,
		Properties: map[string]any{domain.PropDefinitionURI: "http.yaml"},
	}, deps)

	require.NoError(t, f.Execute(context.Background()))
	assert.Equal(t, HTTPAPIFlowName, f.Name())
	assert.Equal(t, domain.KindHTTPAPI, f.Kind())
	client.AssertExpectations(t)
}

func TestDefaultConstructors(t *testing.T) {
	ctors := DefaultConstructors(baseDeps())
	sc := newSyncContext(t.TempDir(), nil, nil)
	id := domain.NewResourceIdentifier("", "R")

	assert.Equal(t, ZipFunctionFlowName, ctors.ZipFunction(sc, id, domain.Resource{}).Name())
	assert.Equal(t, ImageFunctionFlowName, ctors.ImageFunction(sc, id, domain.Resource{}).Name())
	assert.Equal(t, LayerFlowName, ctors.Layer(sc, id, domain.Resource{}).Name())
	assert.Equal(t, RestAPIFlowName, ctors.RestAPI(sc, id, domain.Resource{}).Name())
	assert.Equal(t, HTTPAPIFlowName, ctors.HTTPAPI(sc, id, domain.Resource{}).Name())
	assert.Equal(t, id, ctors.Layer(sc, id, domain.Resource{}).Identifier())
}
