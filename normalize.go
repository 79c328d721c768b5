package reporttemplar

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Форма присылает значения полей блока JSON-объектом.

// ValuesFromJSON разбирает объект значений полей. Пустая строка — пустые значения.
func ValuesFromJSON(s string) (Values, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Values{}, nil
	}
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("значения полей: %w", err)
	}
	out := make(Values, len(raw))
	for k, v := range raw {
		out[k] = deepNormalize(v)
	}
	return out, nil
}

// deepNormalize оставляет только то, что понимает движок: строки, числа, списки.
// null становится отсутствием значения, логические — "true"/"".
func deepNormalize(v interface{}) interface{} {
	switch vv := v.(type) {
	case []interface{}:
		out := make([]interface{}, 0, len(vv))
		for _, it := range vv {
			if it == nil {
				continue
			}
			out = append(out, deepNormalize(it))
		}
		return out
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = deepNormalize(val)
		}
		return vv
	case bool:
		if vv {
			return "true"
		}
		return ""
	default:
		return vv
	}
}
