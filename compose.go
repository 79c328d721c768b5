package reporttemplar

import (
	"regexp"
	"strings"
)

// -----------------------------
// Сборка блоков в один отчёт
// -----------------------------

// Item — отрендеренный текст одного блока (одна итерация repeat).
type Item struct {
	ID       string
	Code     string
	Text     string
	IsInline bool
}

// Composition — результат сборки: итоговый текст и разбиение элементов.
type Composition struct {
	Text     string
	Visible  []Item // вошли в текст самостоятельно
	Consumed []Item // подставлены в плейсхолдеры других блоков

	consumed []bool
}

// IsConsumed сообщает, ушёл ли i-й элемент входа в плейсхолдер.
func (c Composition) IsConsumed(i int) bool {
	return i >= 0 && i < len(c.consumed) && c.consumed[i]
}

var rxPlaceholder = regexp.MustCompile(`\{\{([\p{L}\p{N}_]+)\}\}`)

// Compose собирает итоговый текст отчёта.
func Compose(items []Item) string {
	return Resolve(items).Text
}

// Resolve подставляет {{CODE}} и склеивает видимые блоки.
// Плейсхолдер забирает первый ещё не использованный блок с таким кодом строго ПОСЛЕ текущего.
// Поэтому блок не может сослаться на предыдущий или сам на себя, и подстановка всегда конечна.
func Resolve(items []Item) Composition {
	consumed := make(map[int]bool, len(items)) // по позиции: итерации repeat делят id блока
	texts := make([]string, len(items))

	var resolve func(pos int) string
	resolve = func(pos int) string {
		return rxPlaceholder.ReplaceAllStringFunc(items[pos].Text, func(ph string) string {
			code := rxPlaceholder.FindStringSubmatch(ph)[1]
			for j := pos + 1; j < len(items); j++ {
				if consumed[j] || items[j].Code != code {
					continue
				}
				consumed[j] = true
				return resolve(j)
			}
			return ""
		})
	}

	for i := range items {
		if consumed[i] {
			continue
		}
		texts[i] = resolve(i)
	}

	res := Composition{consumed: make([]bool, len(items))}
	var sb strings.Builder
	for i, it := range items {
		if consumed[i] {
			res.consumed[i] = true
			res.Consumed = append(res.Consumed, it)
			continue
		}
		if texts[i] == "" {
			continue
		}
		if sb.Len() > 0 {
			if it.IsInline {
				sb.WriteString(" ")
			} else {
				sb.WriteString("\n\n")
			}
		}
		sb.WriteString(texts[i])
		it.Text = texts[i]
		res.Visible = append(res.Visible, it)
	}
	res.Text = sb.String()
	return res
}
