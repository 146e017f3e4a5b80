package schema

import "strings"

// EnumDescription documents one enum member.
type EnumDescription struct {
	Name  string
	Title string
}

// DescribeEnum renders an introduction line followed by one "name: title"
// line per member, in order.
func DescribeEnum(introduction string, members []EnumDescription) string {
	lines := make([]string, 0, len(members)+1)
	lines = append(lines, introduction)
	for _, m := range members {
		lines = append(lines, m.Name+": "+m.Title)
	}
	return strings.Join(lines, "\n")
}

// EnumSchema builds a string enum schema whose description is rendered with
// DescribeEnum.
func EnumSchema(introduction string, members []EnumDescription) *JSONSchema {
	values := make([]any, len(members))
	for i, m := range members {
		values[i] = m.Name
	}
	return &JSONSchema{
		Type:        "string",
		Enum:        values,
		Description: DescribeEnum(introduction, members),
	}
}
