package types

// SchemaFormat represents the input format for schema definitions.
type SchemaFormat string

// Schema format constants.
const (
	FormatZod        SchemaFormat = "zod"
	FormatJSONSchema SchemaFormat = "json_schema"
	FormatYAML       SchemaFormat = "yaml"
	FormatGoStruct   SchemaFormat = "go_struct"
)

// SchemaFormats lists the supported schema formats.
func SchemaFormats() []SchemaFormat {
	return []SchemaFormat{FormatZod, FormatJSONSchema, FormatYAML, FormatGoStruct}
}

// ParseSchemaFormat maps user-supplied text to a SchemaFormat.
// The second return value is false when the text names no known format.
func ParseSchemaFormat(s string) (SchemaFormat, bool) {
	switch normalize(s) {
	case "zod":
		return FormatZod, true
	case "json_schema", "json-schema", "jsonschema", "json":
		return FormatJSONSchema, true
	case "yaml", "yml":
		return FormatYAML, true
	case "go_struct", "go-struct", "go":
		return FormatGoStruct, true
	default:
		return "", false
	}
}

// FormattedError is a user-presentable validation error: the dotted path of
// the offending field and a message rendered under a formatting policy.
type FormattedError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
