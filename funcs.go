package reporttemplar

import "strings"

// -----------------------------
// Встроенные функции
// -----------------------------

type funcName string

const (
	fnAvgTime   funcName = "AVG_TIME"
	fnSumTime   funcName = "SUM_TIME"
	fnAvgNum    funcName = "AVG_NUM"
	fnSumNum    funcName = "SUM_NUM"
	fnPace      funcName = "PACE"
	fnAvgHeight funcName = "AVG_HEIGHT"
)

// weightSuffix — ключ неявной "весовой" дистанции поля: <поле>_weight.
const weightSuffix = "_weight"

// callFunc вызывает функцию из фиксированного набора. Неизвестное имя даёт "".
func callFunc(ctx *evalContext, name string, args []string) string {
	switch funcName(name) {
	case fnAvgTime:
		return avgTime(flattenArgs(ctx, args))
	case fnSumTime:
		return sumTime(flattenArgs(ctx, args))
	case fnAvgNum:
		return avgNum(flattenArgs(ctx, args))
	case fnSumNum:
		return sumNum(flattenArgs(ctx, args))
	case fnPace:
		return pace(ctx, args)
	case fnAvgHeight:
		return avgHeight(ctx, args)
	}
	return ""
}

// flattenArgs разворачивает аргументы (скаляры и списки) в один плоский список строк.
func flattenArgs(ctx *evalContext, args []string) []string {
	var out []string
	for _, a := range args {
		if strings.TrimSpace(a) == "" {
			continue
		}
		v, ok := evaluate(ctx, a, true)
		if !ok {
			continue
		}
		if arr, ok := toList(v); ok {
			for _, it := range arr {
				out = append(out, toString(it))
			}
			continue
		}
		out = append(out, toString(v))
	}
	return out
}

// avgTime — нулевые значения считаются "не введено" и в среднее не входят.
func avgTime(items []string) string {
	var sum float64
	n := 0
	for _, it := range items {
		sec := secondsFromText(it)
		if sec == 0 {
			continue
		}
		sum += sec
		n++
	}
	if n == 0 {
		return ""
	}
	return textFromSeconds(sum / float64(n))
}

func sumTime(items []string) string {
	var sum float64
	for _, it := range items {
		sum += secondsFromText(it)
	}
	return textFromSeconds(sum)
}

func avgNum(items []string) string {
	var sum float64
	n := 0
	for _, it := range items {
		v, ok := numberFromText(it)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return ""
	}
	return formatNumber(round1(sum / float64(n)))
}

func sumNum(items []string) string {
	var sum float64
	n := 0
	for _, it := range items {
		v, ok := numberFromText(it)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return ""
	}
	return formatNumber(sum)
}

// resolveDistanceKm: явный второй аргумент или <первый аргумент>_weight из глобального контекста.
func resolveDistanceKm(ctx *evalContext, args []string) float64 {
	if len(args) >= 2 && strings.TrimSpace(args[1]) != "" {
		v, _ := evaluate(ctx, args[1], true)
		return distanceKmFromText(toString(v))
	}
	if len(args) == 0 {
		return 0
	}
	w, ok := ctx.global[stripBraces(args[0])+weightSuffix]
	if !ok {
		return 0
	}
	return distanceKmFromText(toString(w))
}

// pace — темп на километр: время / дистанция.
func pace(ctx *evalContext, args []string) string {
	if len(args) == 0 {
		return ""
	}
	km := resolveDistanceKm(ctx, args)
	if km <= 0 {
		return ""
	}
	var sec float64
	for _, it := range flattenArgs(ctx, args[:1]) {
		sec += secondsFromText(it)
	}
	return textFromSeconds(sec / km)
}

// avgHeight — набор высоты на километр, один знак, запятая.
func avgHeight(ctx *evalContext, args []string) string {
	if len(args) == 0 {
		return ""
	}
	km := resolveDistanceKm(ctx, args)
	if km <= 0 {
		return ""
	}
	var value float64
	found := false
	for _, it := range flattenArgs(ctx, args[:1]) {
		if v, ok := numberFromText(it); ok {
			value += v
			found = true
		}
	}
	if !found {
		return ""
	}
	return formatDecimalComma(round1(value / km))
}
