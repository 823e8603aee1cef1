package domain

const (
	// Top level resource keys
	KeyType       = "Type"
	KeyProperties = "Properties"
	KeyMetadata   = "Metadata"

	// Function properties
	PropPackageType  = "PackageType"
	PropCodeURI      = "CodeUri"
	PropCode         = "Code"
	PropImageURI     = "ImageUri"
	PropFunctionName = "FunctionName"

	// Layer properties
	PropContentURI         = "ContentUri"
	PropContent            = "Content"
	PropLayerName          = "LayerName"
	PropCompatibleRuntimes = "CompatibleRuntimes"
	PropDescription        = "Description"

	// API properties
	PropDefinitionURI  = "DefinitionUri"
	PropDefinitionBody = "DefinitionBody"
	PropBodyS3Location = "BodyS3Location"
	PropStageName      = "StageName"

	// Nested stack properties
	PropLocation    = "Location"
	PropTemplateURL = "TemplateURL"
	PropParameters  = "Parameters"

	// Metadata keys written by the build step
	MetaDockerTag     = "DockerTag"
	MetaDockerContext = "DockerContext"
	MetaBuildMethod   = "BuildMethod"
)
