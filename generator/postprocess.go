package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseTranslation reads the model output. Content that is not JSON is kept
// as the simplified text with no actions; an empty reply counts as "{}".
func ParseTranslation(raw string) Translation {
	content := raw
	if content == "" {
		content = "{}"
	}

	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Translation{Simple: strings.TrimSpace(content), Actions: []string{}}
	}

	obj, _ := parsed.(map[string]any)
	return Translation{
		Simple:  strings.TrimSpace(stringField(obj["simple"])),
		Actions: listField(obj["actions"]),
	}
}

func stringField(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if !s {
			return ""
		}
	case float64:
		if s == 0 {
			return ""
		}
	}
	return fmt.Sprint(v)
}

func listField(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
			continue
		}
		b, err := json.Marshal(it)
		if err != nil {
			continue
		}
		out = append(out, string(b))
	}
	return out
}
