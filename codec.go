package reporttemplar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// -----------------------------
// Время и числа
// -----------------------------

// secondsFromText переводит "H:MM:SS[,f]", "MM:SS[,f]" или голое число в секунды.
// Любая другая форма даёт 0: движок собирает текст, а не валидирует ввод.
func secondsFromText(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	var total float64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		last := i == len(parts)-1
		if !last {
			// часы и минуты — только целые
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0
			}
			total = total*60 + float64(n)
			continue
		}
		v, ok := numberFromText(p)
		if !ok || v < 0 {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// textFromSeconds форматирует секунды как H:MM:SS или M:SS, десятые — только ненулевые.
func textFromSeconds(total float64) string {
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return ""
	}
	tenths := int64(math.Round(total * 10))
	frac := tenths % 10
	secs := tenths / 10
	h := secs / 3600
	m := (secs % 3600) / 60
	sec := secs % 60

	var out string
	if h > 0 {
		out = fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	} else {
		out = fmt.Sprintf("%d:%02d", m, sec)
	}
	if frac != 0 {
		out += "," + strconv.FormatInt(frac, 10)
	}
	return out
}

// numberFromText понимает и запятую, и точку как десятичный разделитель.
func numberFromText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

var (
	kmSuffixes    = []string{"km", "км"}
	meterSuffixes = []string{"m", "м"}
)

// distanceKmFromText возвращает дистанцию в километрах.
// Без единиц число >= 1000 считается метрами: поле "дистанция" заполняют то так, то так.
func distanceKmFromText(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	unit := ""
	for _, suf := range kmSuffixes {
		if strings.HasSuffix(s, suf) {
			unit = "km"
			s = strings.TrimSuffix(s, suf)
			break
		}
	}
	if unit == "" {
		for _, suf := range meterSuffixes {
			if strings.HasSuffix(s, suf) {
				unit = "m"
				s = strings.TrimSuffix(s, suf)
				break
			}
		}
	}
	v, ok := numberFromText(s)
	if !ok || v <= 0 {
		return 0
	}
	switch {
	case unit == "m":
		return v / 1000
	case unit == "" && v >= 1000:
		return v / 1000
	}
	return v
}

// round1 округляет до одного знака после запятой.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDecimalComma — "12,5" вместо "12.5"
func formatDecimalComma(v float64) string {
	return strings.ReplaceAll(formatNumber(v), ".", ",")
}
