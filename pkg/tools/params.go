package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rspace-os/rspace-mcp/pkg/grid"
)

// ReadString reads a string parameter from tool input.
func ReadString(params map[string]any, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("parameter %q is required", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		// IDs arrive as numbers when the caller passes a numeric ID.
		if f, isNum := v.(float64); isNum {
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}
		if required {
			return "", fmt.Errorf("parameter %q must be a string", key)
		}
		return "", nil
	}
	return strings.TrimSpace(s), nil
}

// ReadStringDefault reads a string parameter with a default value.
func ReadStringDefault(params map[string]any, key, defaultVal string) string {
	s, err := ReadString(params, key, false)
	if err != nil || s == "" {
		return defaultVal
	}
	return s
}

// ReadNumber reads a numeric parameter from tool input.
func ReadNumber(params map[string]any, key string, required bool) (float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("parameter %q is required", key)
		}
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			if required {
				return 0, fmt.Errorf("parameter %q must be a number", key)
			}
			return 0, nil
		}
		return f, nil
	}
	if required {
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
	return 0, nil
}

// ReadInt reads an integer parameter from tool input.
func ReadInt(params map[string]any, key string, required bool) (int, error) {
	n, err := ReadNumber(params, key, required)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ReadIntDefault reads an integer parameter, returning the default when the
// key is absent. An explicitly supplied zero is returned as zero.
func ReadIntDefault(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key]; !ok || v == nil {
		return defaultVal
	}
	n, err := ReadInt(params, key, false)
	if err != nil {
		return defaultVal
	}
	return n
}

// ReadBool reads a boolean parameter from tool input.
func ReadBool(params map[string]any, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		lower := strings.ToLower(strings.TrimSpace(b))
		return lower == "true" || lower == "1" || lower == "yes"
	case float64:
		return b != 0
	}
	return defaultVal
}

// ReadStringSlice reads a string array parameter from tool input. A single
// string is accepted as a one-element slice.
func ReadStringSlice(params map[string]any, key string, required bool) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("parameter %q is required", key)
		}
		return nil, nil
	}
	switch arr := v.(type) {
	case []string:
		return arr, nil
	case []any:
		result := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result, nil
	case string:
		return []string{arr}, nil
	}
	if required {
		return nil, fmt.Errorf("parameter %q must be a string array", key)
	}
	return nil, nil
}

// ReadObjectList reads an array-of-objects parameter from tool input.
func ReadObjectList(params map[string]any, key string, required bool) ([]map[string]any, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("parameter %q is required", key)
		}
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("parameter %q must be an array of objects", key)
	}
	result := make([]map[string]any, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parameter %q[%d] must be an object", key, i)
		}
		result = append(result, m)
	}
	return result, nil
}

// ReadCoordList reads grid coordinates from tool input. Each entry is an
// object with 1-based "row" and "column" keys; the legacy "x"/"y" spelling
// (x = column, y = row) is accepted too.
func ReadCoordList(params map[string]any, key string, required bool) ([]grid.Coord, error) {
	objs, err := ReadObjectList(params, key, required)
	if err != nil || objs == nil {
		return nil, err
	}
	coords := make([]grid.Coord, 0, len(objs))
	for i, obj := range objs {
		row, err := ReadInt(obj, "row", false)
		if err != nil {
			return nil, fmt.Errorf("parameter %q[%d]: %w", key, i, err)
		}
		column, _ := ReadInt(obj, "column", false)
		if row == 0 && column == 0 {
			row, _ = ReadInt(obj, "y", false)
			column, _ = ReadInt(obj, "x", false)
		}
		if row == 0 || column == 0 {
			return nil, fmt.Errorf("parameter %q[%d] needs row and column (or x and y)", key, i)
		}
		coords = append(coords, grid.Coord{Row: row, Column: column})
	}
	return coords, nil
}
