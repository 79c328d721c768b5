package reporttemplar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// -----------------------------
// Вычисление выражений
// -----------------------------

// Values — поля одного блока: ключ → строка, число или список.
type Values map[string]interface{}

type loopState struct {
	index int // с нуля
	total int
}

type evalContext struct {
	local  interface{} // текущий элемент each (или сами поля вне циклов)
	global Values
	loop   *loopState
	codes  map[string]bool // коды блоков сессии: их {{CODE}} доживает до сборки
}

func (ctx *evalContext) withLoop(local interface{}, index, total int) *evalContext {
	return &evalContext{local: local, global: ctx.global, loop: &loopState{index: index, total: total}, codes: ctx.codes}
}

var (
	rxCall       = regexp.MustCompile(`(?s)^([A-Z_]+)\((.*)\)$`)
	rxLoopIndex  = regexp.MustCompile(`^([\p{L}_][\p{L}\p{N}_]*)\[i\]$`)
	rxFixedIndex = regexp.MustCompile(`^([\p{L}_][\p{L}\p{N}_]*)\[(\d+)\]$`)
	rxIdent      = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)
)

// stripBraces снимает лишнюю обёртку {{ }} вокруг выражения.
func stripBraces(expr string) string {
	expr = strings.TrimSpace(expr)
	for strings.HasPrefix(expr, "{{") && matchClose(expr, 0) == len(expr)-2 {
		expr = strings.TrimSpace(expr[2 : len(expr)-2])
	}
	return expr
}

// evaluate разрешает выражение. ok=false — значение не найдено;
// с fallbackToLiteral вместо этого возвращается сам текст выражения.
func evaluate(ctx *evalContext, expr string, fallbackToLiteral bool) (interface{}, bool) {
	expr = stripBraces(expr)
	if expr == "" {
		return nil, false
	}

	switch expr {
	case "this":
		// вне each локальный контекст — сами поля блока, печатать их нечего
		if _, ok := ctx.local.(Values); ok {
			return nil, false
		}
		return ctx.local, ctx.local != nil
	case "@index":
		if ctx.loop == nil {
			return float64(0), true
		}
		return float64(ctx.loop.index), true
	case "@total":
		if ctx.loop == nil {
			return float64(0), true
		}
		return float64(ctx.loop.total), true
	}

	if lit, ok := quotedLiteral(expr); ok {
		return lit, true
	}

	if m := rxCall.FindStringSubmatch(expr); m != nil {
		return callFunc(ctx, m[1], splitArgs(m[2])), true
	}

	if m := rxLoopIndex.FindStringSubmatch(expr); m != nil {
		if ctx.loop == nil {
			return literalOrMissing(expr, fallbackToLiteral)
		}
		if v, ok := indexGlobal(ctx, m[1], ctx.loop.index); ok {
			return v, true
		}
		return literalOrMissing(expr, fallbackToLiteral)
	}
	if m := rxFixedIndex.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[2])
		if v, ok := indexGlobal(ctx, m[1], n-1); ok {
			return v, true
		}
		return literalOrMissing(expr, fallbackToLiteral)
	}

	if v, ok := lookup(ctx, expr); ok {
		return v, true
	}
	if n, ok := numberFromText(expr); ok {
		return n, true
	}
	return literalOrMissing(expr, fallbackToLiteral)
}

func literalOrMissing(expr string, fallbackToLiteral bool) (interface{}, bool) {
	if fallbackToLiteral {
		return expr, true
	}
	return nil, false
}

func quotedLiteral(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}
	q := expr[0]
	if (q == '"' || q == '\'') && expr[len(expr)-1] == q {
		return expr[1 : len(expr)-1], true
	}
	return "", false
}

// lookup — сначала локальный контекст, потом глобальный.
func lookup(ctx *evalContext, name string) (interface{}, bool) {
	if m, ok := ctx.local.(map[string]interface{}); ok {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	if m, ok := ctx.local.(Values); ok {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	v, ok := ctx.global[name]
	return v, ok
}

func indexGlobal(ctx *evalContext, name string, i int) (interface{}, bool) {
	arr, ok := toList(ctx.global[name])
	if !ok || i < 0 || i >= len(arr) {
		return nil, false
	}
	return arr[i], true
}

// toList приводит []string и []interface{} к []interface{}.
func toList(v interface{}) ([]interface{}, bool) {
	switch vv := v.(type) {
	case []interface{}:
		return vv, true
	case []string:
		out := make([]interface{}, len(vv))
		for i, s := range vv {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(vv))
		for i, f := range vv {
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func toString(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		return formatNumber(vv)
	case int:
		return strconv.Itoa(vv)
	case bool:
		if vv {
			return "true"
		}
		return "false"
	}
	if arr, ok := toList(v); ok {
		strs := make([]string, len(arr))
		for i, it := range arr {
			strs[i] = toString(it)
		}
		return strings.Join(strs, "; ")
	}
	return fmt.Sprintf("%v", v)
}

func truthy(v interface{}) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case string:
		return vv != ""
	case float64:
		return vv != 0
	case int:
		return vv != 0
	case map[string]interface{}:
		return len(vv) > 0
	}
	if arr, ok := toList(v); ok {
		return len(arr) > 0
	}
	return true
}

// splitArgs делит аргументы по запятым верхнего уровня: не внутри (...), {{...}} и кавычек.
func splitArgs(s string) []string {
	var args []string
	var b strings.Builder
	quote := byte(0)
	paren, braces := 0, 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			b.WriteByte(ch)
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch {
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '(':
			paren++
		case ch == ')':
			if paren > 0 {
				paren--
			}
		case ch == '{' && i+1 < len(s) && s[i+1] == '{':
			braces++
			b.WriteString("{{")
			i++
			continue
		case ch == '}' && i+1 < len(s) && s[i+1] == '}':
			if braces > 0 {
				braces--
			}
			b.WriteString("}}")
			i++
			continue
		case ch == ',' && paren == 0 && braces == 0:
			args = append(args, strings.TrimSpace(b.String()))
			b.Reset()
			continue
		}
		b.WriteByte(ch)
	}
	if last := strings.TrimSpace(b.String()); last != "" || len(args) > 0 {
		args = append(args, last)
	}
	return args
}
