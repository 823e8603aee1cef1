package domain

type ResourceKind string

const (
	KindFunction     ResourceKind = "Function"
	KindLayerVersion ResourceKind = "LayerVersion"
	KindRestAPI      ResourceKind = "RestApi"
	KindHTTPAPI      ResourceKind = "HttpApi"
	KindNestedStack  ResourceKind = "NestedStack"
)

func (rk ResourceKind) String() string {
	return string(rk)
}

// CloudFormation and SAM resource types this tool knows about.
const (
	TypeServerlessFunction     = "AWS::Serverless::Function"
	TypeLambdaFunction         = "AWS::Lambda::Function"
	TypeServerlessLayerVersion = "AWS::Serverless::LayerVersion"
	TypeLambdaLayerVersion     = "AWS::Lambda::LayerVersion"
	TypeServerlessAPI          = "AWS::Serverless::Api"
	TypeAPIGatewayRestAPI      = "AWS::ApiGateway::RestApi"
	TypeServerlessHTTPAPI      = "AWS::Serverless::HttpApi"
	TypeAPIGatewayV2API        = "AWS::ApiGatewayV2::Api"
	TypeServerlessApplication  = "AWS::Serverless::Application"
	TypeCloudFormationStack    = "AWS::CloudFormation::Stack"
)

var resourceTypeToKind = map[string]ResourceKind{
	TypeServerlessFunction:     KindFunction,
	TypeLambdaFunction:         KindFunction,
	TypeServerlessLayerVersion: KindLayerVersion,
	TypeLambdaLayerVersion:     KindLayerVersion,
	TypeServerlessAPI:          KindRestAPI,
	TypeAPIGatewayRestAPI:      KindRestAPI,
	TypeServerlessHTTPAPI:      KindHTTPAPI,
	TypeAPIGatewayV2API:        KindHTTPAPI,
	TypeServerlessApplication:  KindNestedStack,
	TypeCloudFormationStack:    KindNestedStack,
}

// KindForType maps a template resource type to its kind. ok is false for
// types the tool does not handle.
func KindForType(resourceType string) (ResourceKind, bool) {
	kind, ok := resourceTypeToKind[resourceType]
	return kind, ok
}

type PackageType string

const (
	PackageTypeZip   PackageType = "Zip"
	PackageTypeImage PackageType = "Image"
)
