package selection

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viz/common"
	"github.com/Carmen-Shannon/oxy-viz/engine/scene"
)

const indentUnit = "  "

// TooltipText returns "name (type)", falling back to the ID when the entity has no name.
func TooltipText(e *scene.Entity) string {
	if e == nil {
		return ""
	}
	name := e.Name
	if name == "" {
		name = e.ID
	}
	if e.Type == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, e.Type)
}

// PanelLines renders the detail panel for e: a header followed by the attributes with
// keys sorted and nested values indented one level per depth.
func PanelLines(e *scene.Entity) []string {
	if e == nil {
		return nil
	}
	lines := []string{TooltipText(e), "id: " + e.ID}
	if e.State != "" {
		lines = append(lines, "state: "+e.State)
	}
	if len(e.Attributes) == 0 {
		return lines
	}
	lines = append(lines, "attributes:")
	return appendMap(lines, e.Attributes, 1)
}

func appendMap(lines []string, m map[string]any, depth int) []string {
	for _, k := range common.SortedKeys(m) {
		lines = appendValue(lines, k, m[k], depth)
	}
	return lines
}

func appendValue(lines []string, key string, v any, depth int) []string {
	pad := strings.Repeat(indentUnit, depth)
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			return append(lines, pad+key+": {}")
		}
		return appendMap(append(lines, pad+key+":"), val, depth+1)
	case map[string]string:
		nested := make(map[string]any, len(val))
		for k, s := range val {
			nested[k] = s
		}
		return appendValue(lines, key, nested, depth)
	case []any:
		if len(val) == 0 {
			return append(lines, pad+key+": []")
		}
		lines = append(lines, pad+key+":")
		for i, item := range val {
			lines = appendValue(lines, fmt.Sprintf("[%d]", i), item, depth+1)
		}
		return lines
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return appendValue(lines, key, items, depth)
	case nil:
		return append(lines, pad+key+": null")
	default:
		return append(lines, fmt.Sprintf("%s%s: %v", pad, key, val))
	}
}
