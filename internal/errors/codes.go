package errors

type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeConfigValidation   Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError    Code = "CONFIG_READ_ERROR"
	CodeConfigParseError   Code = "CONFIG_PARSE_ERROR"
	CodePlatformAPIError   Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError  Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound   Code = "RESOURCE_NOT_FOUND"
	CodeTypeAssertionError Code = "TYPE_ASSERTION_ERROR"
	CodeNotImplemented     Code = "NOT_IMPLEMENTED"
	CodeTimeout            Code = "TIMEOUT_ERROR"

	// Template loading
	CodeTemplateReadError  Code = "TEMPLATE_READ_ERROR"
	CodeTemplateParseError Code = "TEMPLATE_PARSE_ERROR"
	CodeNestedStackError   Code = "NESTED_STACK_ERROR"

	// Sync
	CodePhysicalIDError     Code = "PHYSICAL_ID_ERROR"
	CodeArtifactError       Code = "ARTIFACT_ERROR"
	CodeSyncFlowError       Code = "SYNC_FLOW_ERROR"
	CodeInfraSyncRequired   Code = "INFRA_SYNC_REQUIRED"
	CodeImagePushError      Code = "IMAGE_PUSH_ERROR"
	CodeUnsupportedResource Code = "UNSUPPORTED_RESOURCE"
)

func (c Code) String() string {
	return string(c)
}
