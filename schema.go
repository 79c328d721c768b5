package reporttemplar

import (
	"regexp"
	"strings"
)

// FieldType — тип поля формы.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldTime   FieldType = "time"
	FieldList   FieldType = "list"
)

// FieldDescriptor описывает одно поле шаблона.
type FieldDescriptor struct {
	Key          string    `yaml:"key" validate:"required"`
	Type         FieldType `yaml:"type" validate:"required,oneof=text number time list"`
	ItemType     FieldType `yaml:"itemType,omitempty" validate:"omitempty,oneof=text number time"`
	ListSize     int       `yaml:"listSize,omitempty" validate:"gte=0"`
	DefaultValue string    `yaml:"defaultValue,omitempty"`
	// Weight — неявная дистанция поля для PACE/AVG_HEIGHT без второго аргумента.
	Weight string `yaml:"weight,omitempty"`
}

// Template — определение шаблона отчёта. Движок его только читает.
type Template struct {
	Code           string            `yaml:"code" validate:"required"`
	IsInline       bool              `yaml:"isInline,omitempty"`
	OutputTemplate string            `yaml:"outputTemplate"`
	Schema         []FieldDescriptor `yaml:"schema" validate:"dive"`
}

// Render нормализует сырые значения по схеме и рендерит шаблон.
func (t *Template) Render(raw Values) string {
	return t.render(raw, nil)
}

func (t *Template) render(raw Values, codes map[string]bool) string {
	return Parse(t.OutputTemplate).execute(Normalize(t.Schema, raw), codes)
}

var rxListSep = regexp.MustCompile(`[;\n]`)

// splitList режет строку по ';' и переводам строк, выбрасывая пустые куски.
func splitList(s string) []interface{} {
	out := []interface{}{}
	for _, part := range rxListSep.Split(s, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Normalize приводит значения к типам схемы:
// - списки: строка режется на элементы, массив проходит как есть, прочее — пустой список
// - отсутствующие значения берутся из defaultValue
// - списки фиксированного размера обрезаются до listSize
// - weight поля попадает в <key>_weight, если не пришёл с формы
// Поля вне схемы сохраняются.
func Normalize(schema []FieldDescriptor, raw Values) Values {
	out := make(Values, len(raw)+len(schema))
	for k, v := range raw {
		out[k] = v
	}
	for _, fd := range schema {
		v, ok := raw[fd.Key]
		if (!ok || v == nil) && fd.DefaultValue != "" {
			v, ok = fd.DefaultValue, true
		}
		if fd.Type == FieldList {
			list := normalizeList(v)
			if fd.ListSize > 0 && len(list) > fd.ListSize {
				list = list[:fd.ListSize]
			}
			out[fd.Key] = list
		} else if ok {
			out[fd.Key] = v
		}
		if fd.Weight != "" {
			wk := fd.Key + weightSuffix
			if _, exists := raw[wk]; !exists {
				out[wk] = fd.Weight
			}
		}
	}
	return out
}

func normalizeList(v interface{}) []interface{} {
	if s, ok := v.(string); ok {
		return splitList(s)
	}
	if arr, ok := toList(v); ok {
		return arr
	}
	return []interface{}{}
}
