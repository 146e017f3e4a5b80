package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseYAMLDocument decodes a YAML schema document into a JSON value:
// mappings become map[string]any and sequences []any.
func ParseYAMLDocument(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("expected a single YAML document")
	}

	return toJSONValue(doc, "")
}

func toJSONValue(v any, at string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			conv, err := toJSONValue(item, at+"/"+k)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			conv, err := toJSONValue(item, at+"/"+key)
			if err != nil {
				return nil, err
			}
			out[key] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			conv, err := toJSONValue(item, fmt.Sprintf("%s/%d", at, i))
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case nil, bool, string, int, int64, uint64, float64:
		return t, nil
	default:
		return nil, fmt.Errorf("%s: unsupported YAML value of type %T", at, v)
	}
}
