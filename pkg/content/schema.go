package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Schema selects the Strapi response shape.
type Schema string

const (
	// SchemaV4 nests fields under "attributes" and relations under {"data": ...}.
	SchemaV4 Schema = "v4"

	// SchemaV5 flattens fields next to "id" and "documentId".
	SchemaV5 Schema = "v5"

	// SchemaAuto inspects each body and picks v4 or v5.
	SchemaAuto Schema = "auto"
)

// ErrUnknownSchema is returned for schema names other than v4, v5 or auto.
var ErrUnknownSchema = errors.New("unknown strapi schema")

// ParseSchema converts a configuration value into a Schema.
// An empty value selects SchemaV5.
func ParseSchema(s string) (Schema, error) {
	switch Schema(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemaV5:
		return SchemaV5, nil
	case SchemaV4:
		return SchemaV4, nil
	case SchemaAuto:
		return SchemaAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSchema, s)
	}
}

// Adapter rewrites a raw response body into the flat v5 shape understood by
// Entity.
type Adapter interface {
	Schema() Schema
	Normalize(body []byte) ([]byte, error)
}

// AdapterFor returns the adapter for a schema.
func AdapterFor(s Schema) (Adapter, error) {
	switch s {
	case SchemaV4:
		return v4Adapter{}, nil
	case SchemaV5, "":
		return v5Adapter{}, nil
	case SchemaAuto:
		return autoAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, s)
	}
}

// DetectSchema reports SchemaV4 when the first data element carries an
// "attributes" object and SchemaV5 otherwise.
func DetectSchema(body []byte) Schema {
	data := gjson.GetBytes(body, "data")
	if data.IsArray() {
		data = data.Get("0")
	}
	if data.Get("attributes").IsObject() {
		return SchemaV4
	}
	return SchemaV5
}

type v5Adapter struct{}

func (v5Adapter) Schema() Schema { return SchemaV5 }

func (v5Adapter) Normalize(body []byte) ([]byte, error) {
	return body, nil
}

type autoAdapter struct{}

func (autoAdapter) Schema() Schema { return SchemaAuto }

func (autoAdapter) Normalize(body []byte) ([]byte, error) {
	if DetectSchema(body) == SchemaV4 {
		return v4Adapter{}.Normalize(body)
	}
	return body, nil
}

type v4Adapter struct{}

func (v4Adapter) Schema() Schema { return SchemaV4 }

// Normalize lifts "attributes" into the entity object and unwraps relation
// wrappers ({"data": x} -> x) below the top level. The top-level "data" and
// "meta" keys are kept.
func (v4Adapter) Normalize(body []byte) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("normalize v4 body: invalid json")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("normalize v4 body: %w", err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return body, nil
	}
	if data, ok := obj["data"]; ok {
		obj["data"] = flattenV4(data)
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("normalize v4 body: %w", err)
	}
	return out, nil
}

func flattenV4(v any) any {
	switch x := v.(type) {
	case []any:
		for i := range x {
			x[i] = flattenV4(x[i])
		}
		return x
	case map[string]any:
		// relation wrapper
		if inner, ok := x["data"]; ok && len(x) == 1 {
			return flattenV4(inner)
		}

		out := make(map[string]any, len(x))
		for k, val := range x {
			if k == "attributes" {
				continue
			}
			out[k] = flattenV4(val)
		}
		if attrs, ok := x["attributes"].(map[string]any); ok {
			for k, val := range attrs {
				out[k] = flattenV4(val)
			}
		}
		return out
	default:
		return v
	}
}
