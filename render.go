package reporttemplar

import (
	"strconv"
	"strings"

	expro "github.com/expr-lang/expr"
)

// -----------------------------
// Рендер
// -----------------------------

// Render разбирает и рендерит шаблон по уже нормализованным значениям.
func Render(src string, values Values) string {
	return Parse(src).Execute(values)
}

// Execute рендерит дерево. Глобальный и локальный контексты — одни и те же поля блока.
func (t *Tree) Execute(values Values) string {
	return t.execute(values, nil)
}

// execute с codes оставляет нетронутыми неразрешённые {{CODE}} блоков сессии.
func (t *Tree) execute(values Values, codes map[string]bool) string {
	if values == nil {
		values = Values{}
	}
	ctx := &evalContext{local: values, global: values, codes: codes}
	var sb strings.Builder
	renderNodes(&sb, t.root.children, ctx)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []node, ctx *evalContext) {
	for _, n := range nodes {
		switch nn := n.(type) {
		case *textNode:
			sb.WriteString(nn.text)
		case *varNode:
			if v, ok := evaluate(ctx, nn.expr, false); ok {
				sb.WriteString(toString(v))
			} else if code := strings.TrimSpace(nn.expr); ctx.codes[code] {
				sb.WriteString("{{" + code + "}}")
			}
		case *blockNode:
			renderBlock(sb, nn, ctx)
		}
	}
}

func renderBlock(sb *strings.Builder, bn *blockNode, ctx *evalContext) {
	switch bn.tag {
	case "each":
		v, _ := evaluate(ctx, bn.arg, false)
		arr, ok := toList(v)
		if !ok {
			return
		}
		for i, item := range arr {
			renderNodes(sb, bn.children, ctx.withLoop(item, i, len(arr)))
		}
	case "repeat":
		count := repeatCount(ctx, bn.arg)
		for i := 0; i < count; i++ {
			renderNodes(sb, bn.children, ctx.withLoop(ctx.local, i, count))
		}
	case "if":
		if evalCondition(ctx, bn.arg) {
			renderNodes(sb, bn.children, ctx)
		}
	}
}

// repeatCount: литерал или переменная.
func repeatCount(ctx *evalContext, arg string) int {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		return max(n, 0)
	}
	v, ok := lookup(ctx, arg)
	if !ok {
		return 0
	}
	if f, ok := v.(float64); ok {
		return max(int(f), 0)
	}
	if f, ok := numberFromText(toString(v)); ok {
		return max(int(f), 0)
	}
	return 0
}

// evalCondition: простая ссылка проверяется на истинность, всё остальное уходит в expr-lang.
func evalCondition(ctx *evalContext, arg string) bool {
	arg = strings.TrimSpace(arg)
	if isReference(arg) {
		v, ok := evaluate(ctx, arg, false)
		return ok && truthy(v)
	}
	return evalBool(ctx, arg)
}

func isReference(s string) bool {
	switch s {
	case "this", "@index", "@total":
		return true
	}
	return rxIdent.MatchString(s) || rxLoopIndex.MatchString(s) || rxFixedIndex.MatchString(s)
}

// evalBool считает условие через expr-lang. Ошибка компиляции или выполнения — ложь.
func evalBool(ctx *evalContext, src string) bool {
	src = strings.NewReplacer("@index", "index", "@total", "total").Replace(src)
	env := map[string]interface{}{}
	for k, v := range ctx.global {
		env[k] = exprValue(v)
	}
	if m, ok := ctx.local.(map[string]interface{}); ok {
		for k, v := range m {
			env[k] = exprValue(v)
		}
	}
	env["this"] = exprValue(ctx.local)
	idx, total := 0, 0
	if ctx.loop != nil {
		idx, total = ctx.loop.index, ctx.loop.total
	}
	env["index"] = idx
	env["total"] = total

	program, err := expro.Compile(src, expro.Env(env), expro.AllowUndefinedVariables())
	if err != nil {
		return false
	}
	out, err := expro.Run(program, env)
	if err != nil {
		return false
	}
	if b, ok := out.(bool); ok {
		return b
	}
	return truthy(out)
}

// exprValue превращает числовые строки в числа, чтобы работали сравнения вида laps > 3.
func exprValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case string:
		if f, ok := numberFromText(vv); ok {
			return f
		}
		return vv
	case Values:
		return map[string]interface{}(vv)
	}
	if arr, ok := toList(v); ok {
		out := make([]interface{}, len(arr))
		for i, it := range arr {
			out[i] = exprValue(it)
		}
		return out
	}
	return v
}
