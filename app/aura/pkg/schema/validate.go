package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// ErrSchemaViolation 模型输出无法解析或不满足约束
var ErrSchemaViolation = errors.New("schema violation")

// ViolationError 描述第一处不满足约束的位置
type ViolationError struct {
	Path   string
	Reason string
}

func (e *ViolationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrSchemaViolation, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", ErrSchemaViolation, e.Path, e.Reason)
}

func (e *ViolationError) Is(target error) bool {
	return target == ErrSchemaViolation
}

func violation(path, format string, args ...any) error {
	return &ViolationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Decode 清理、解析并校验模型返回的文本，全部通过后才写入 out。
// 任何一处失败都返回 ErrSchemaViolation，out 保持不变。
func Decode(desc *genai.Schema, text string, out any) error {
	raw := StripFence(text)
	if raw == "" {
		return violation("", "empty response")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return violation("", "invalid json: %v", err)
	}
	if dec.More() {
		return violation("", "trailing data after json document")
	}

	if err := Validate(desc, doc); err != nil {
		return err
	}

	// 只解码描述符声明的字段，模型附带的其他字段（如 dateRange、citations）由调用方回填
	data, err := json.Marshal(project(desc, doc))
	if err != nil {
		return violation("", "decode: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return violation("", "decode: %v", err)
	}
	return nil
}

// project 按描述符裁剪文档，去掉未声明的对象属性
func project(desc *genai.Schema, v any) any {
	if desc == nil {
		return v
	}
	switch val := v.(type) {
	case map[string]any:
		if desc.Type != genai.TypeObject {
			return val
		}
		kept := make(map[string]any, len(desc.Properties))
		for name, prop := range desc.Properties {
			if child, ok := val[name]; ok {
				kept[name] = project(prop, child)
			}
		}
		return kept
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = project(desc.Items, item)
		}
		return items
	}
	return v
}

// StripFence 去掉模型偶尔包裹的 ```json 代码块
func StripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return string(bytes.TrimSpace([]byte(s)))
}

// Validate 校验 json.Decoder(UseNumber) 解出的文档
func Validate(desc *genai.Schema, doc any) error {
	return validate(desc, doc, "$")
}

func validate(desc *genai.Schema, v any, path string) error {
	if desc == nil {
		return nil
	}
	if v == nil {
		if desc.Nullable != nil && *desc.Nullable {
			return nil
		}
		return violation(path, "null where %s expected", strings.ToLower(string(desc.Type)))
	}

	switch desc.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return violation(path, "expected object, got %s", kindOf(v))
		}
		for _, name := range desc.Required {
			if _, ok := obj[name]; !ok {
				return violation(path+"."+name, "required field missing")
			}
		}
		for _, name := range propertyNames(desc) {
			fv, ok := obj[name]
			if !ok {
				continue
			}
			if err := validate(desc.Properties[name], fv, path+"."+name); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return violation(path, "expected array, got %s", kindOf(v))
		}
		for i, item := range arr {
			if err := validate(desc.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeString:
		s, ok := v.(string)
		if !ok {
			return violation(path, "expected string, got %s", kindOf(v))
		}
		if len(desc.Enum) > 0 && !slices.Contains(desc.Enum, s) {
			return violation(path, "%q is not one of %v", s, desc.Enum)
		}
	case genai.TypeNumber, genai.TypeInteger:
		n, ok := v.(json.Number)
		if !ok {
			return violation(path, "expected number, got %s", kindOf(v))
		}
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return violation(path, "invalid number %s", n)
		}
		if desc.Type == genai.TypeInteger && f != math.Trunc(f) {
			return violation(path, "expected integer, got %s", n)
		}
		if desc.Minimum != nil && f < *desc.Minimum {
			return violation(path, "%s is below minimum %v", n, *desc.Minimum)
		}
		if desc.Maximum != nil && f > *desc.Maximum {
			return violation(path, "%s is above maximum %v", n, *desc.Maximum)
		}
	case genai.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return violation(path, "expected boolean, got %s", kindOf(v))
		}
	}
	return nil
}

// propertyNames 按 PropertyOrdering 优先的稳定顺序返回字段名，保证报错位置确定
func propertyNames(desc *genai.Schema) []string {
	names := make([]string, 0, len(desc.Properties))
	names = append(names, desc.PropertyOrdering...)
	var rest []string
	for name := range desc.Properties {
		if !slices.Contains(names, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
