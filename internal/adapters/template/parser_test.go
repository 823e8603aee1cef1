package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_YAMLIntrinsics(t *testing.T) {
	raw := []byte(`
Resources:
  Fn:
    Type: AWS::Serverless::Function
    Properties:
      FunctionName: !Sub "${AWS::StackName}-fn"
      Role: !GetAtt Role.Arn
      Layers:
        - !Ref Layer
      Environment:
        Variables:
          TABLE: !ImportValue shared-table
      Timeout: 30
  Layer:
    Type: AWS::Serverless::LayerVersion
`)
	doc, err := parseDocument(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Fn", "Layer"}, doc.ResourceOrder)
	props := doc.Resources["Fn"].Properties
	assert.Equal(t, map[string]any{"Fn::Sub": "${AWS::StackName}-fn"}, props["FunctionName"])
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"Role", "Arn"}}, props["Role"])
	assert.Equal(t, []any{map[string]any{"Ref": "Layer"}}, props["Layers"])
	assert.Equal(t, 30, props["Timeout"])

	env := props["Environment"].(map[string]any)["Variables"].(map[string]any)
	assert.Equal(t, map[string]any{"Fn::ImportValue": "shared-table"}, env["TABLE"])
}

func TestParseDocument_SequenceIntrinsic(t *testing.T) {
	raw := []byte(`
Resources:
  Api:
    Type: AWS::Serverless::Api
    Properties:
      Name: !Join ["-", [app, api]]
`)
	doc, err := parseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t,
		map[string]any{"Fn::Join": []any{"-", []any{"app", "api"}}},
		doc.Resources["Api"].Properties["Name"])
}

func TestParseDocument_YAMLAnchors(t *testing.T) {
	raw := []byte(`
Resources:
  A:
    Type: AWS::Serverless::Function
    Properties: &props
      Handler: app.handler
  B:
    Type: AWS::Serverless::Function
    Properties: *props
`)
	doc, err := parseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, "app.handler", doc.Resources["B"].Properties["Handler"])
}

func TestParseDocument_JSONKeepsOrder(t *testing.T) {
	raw := []byte(`{
  "Parameters": {"Stage": {"Type": "String", "Default": "dev"}},
  "Resources": {
    "Zeta": {"Type": "AWS::Lambda::Function", "Properties": {"Code": {"S3Bucket": "b"}}},
    "Alpha": {"Type": "AWS::Lambda::LayerVersion"},
    "Mid": {"Type": "AWS::ApiGatewayV2::Api"}
  }
}`)
	doc, err := parseDocument(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, doc.ResourceOrder)
	assert.Equal(t, "AWS::Lambda::LayerVersion", doc.Resources["Alpha"].Type)
	assert.Equal(t, "dev", doc.Parameters["Stage"].Default)
}

func TestParseDocument_Errors(t *testing.T) {
	_, err := parseDocument([]byte("- just\n- a list\n"))
	assert.Error(t, err)

	_, err = parseDocument([]byte("Resources: [1, 2]\n"))
	assert.Error(t, err)

	_, err = parseDocument([]byte(`{"Resources": [}`))
	assert.Error(t, err)
}
