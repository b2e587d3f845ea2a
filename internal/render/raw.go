package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/valyala/fastjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"ucs/internal/envelope"
)

// rawIndent matches the four space indentation users script against.
const rawIndent = "    "

// RawJSON re-keys an envelope body into an array of objects named by the
// schema's logical keys and pretty prints it. An object of envelopes becomes
// an object of such arrays. Any other JSON is pretty printed with its key
// order kept; a body that is not JSON is returned unchanged.
func RawJSON(body string) (string, error) {
	v, ok := rekey(body)
	if !ok {
		return body, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", rawIndent)
	if err := enc.Encode(toOrdered(v)); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// RawYAML is RawJSON emitting YAML.
func RawYAML(body string) (string, error) {
	v, ok := rekey(body)
	if !ok {
		return body, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// rekey parses body and replaces envelopes with their re-keyed rows. ok is
// false when body is not JSON. A malformed envelope is kept as is.
func rekey(body string) (*fastjson.Value, bool) {
	v, err := fastjson.Parse(body)
	if err != nil {
		return nil, false
	}

	var arena fastjson.Arena
	switch {
	case envelope.IsEnvelope(body):
		env, err := envelope.FromValue(v, body)
		if err != nil {
			return v, true
		}
		return rekeyEnvelope(&arena, env), true

	case envelope.IsGroupValue(v):
		group, err := envelope.ParseGroup(body)
		if err != nil {
			return v, true
		}
		out := arena.NewObject()
		for _, member := range group {
			out.Set(member.Name, rekeyEnvelope(&arena, member.Envelope))
		}
		return out, true
	}
	return v, true
}

func rekeyEnvelope(arena *fastjson.Arena, env *envelope.Envelope) *fastjson.Value {
	rows := arena.NewArray()
	for i, row := range env.Rows {
		obj := arena.NewObject()
		for j, col := range env.Schema {
			obj.Set(col.Key, row[j].JSON())
		}
		rows.SetArrayItem(i, obj)
	}
	return rows
}

// toOrdered converts v into values encoding/json marshals with object key
// order preserved.
func toOrdered(v *fastjson.Value) interface{} {
	switch v.Type() {
	case fastjson.TypeObject:
		om := orderedmap.New[string, interface{}]()
		obj, _ := v.Object()
		obj.Visit(func(key []byte, member *fastjson.Value) {
			om.Set(string(key), toOrdered(member))
		})
		return om
	case fastjson.TypeArray:
		items, _ := v.Array()
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = toOrdered(item)
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	default:
		return json.RawMessage(v.String())
	}
}

func toYAMLNode(v *fastjson.Value) *yaml.Node {
	switch v.Type() {
	case fastjson.TypeObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		obj, _ := v.Object()
		obj.Visit(func(key []byte, member *fastjson.Value) {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(key)},
				toYAMLNode(member))
		})
		return node
	case fastjson.TypeArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		items, _ := v.Array()
		for _, item := range items {
			node.Content = append(node.Content, toYAMLNode(item))
		}
		return node
	case fastjson.TypeString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(v.GetStringBytes())}
	case fastjson.TypeNumber:
		raw := v.String()
		tag := "!!int"
		if strings.ContainsAny(raw, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: raw}
	case fastjson.TypeTrue:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"}
	case fastjson.TypeFalse:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
