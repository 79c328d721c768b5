package reporttemplar

import (
	"sort"
	"strconv"
)

// Block — один экземпляр шаблона в сессии сборки отчёта. Не сохраняется.
type Block struct {
	ID          string
	Template    *Template
	Values      Values
	RepeatCount int // >1 — текст блока повторяется столько раз
}

// Match — предложение сервиса сопоставления: шаблон и найденный в описании задачи фрагмент.
// RepeatCount вычисляется снаружи (например, из "12x400").
type Match struct {
	Template    *Template
	MatchedText string
	Index       int
	Length      int
	RepeatCount int
}

// BlocksFromMatches создаёт блоки в порядке появления фрагментов в тексте.
// Значения полей заполняются при рендере из defaultValue схемы.
func BlocksFromMatches(matches []Match) []Block {
	ms := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Template != nil {
			ms = append(ms, m)
		}
	}
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Index < ms[j].Index })

	blocks := make([]Block, 0, len(ms))
	for i, m := range ms {
		blocks = append(blocks, Block{
			ID:          "b" + strconv.Itoa(i+1),
			Template:    m.Template,
			Values:      Values{},
			RepeatCount: max(m.RepeatCount, 1),
		})
	}
	return blocks
}

// RenderBlocks рендерит каждый блок один раз и размножает текст по RepeatCount.
// Неразрешённые переменные, совпадающие с кодом блока сессии, остаются плейсхолдерами {{CODE}}.
func RenderBlocks(blocks []Block) []Item {
	codes := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if b.Template != nil {
			codes[b.Template.Code] = true
		}
	}
	var items []Item
	for _, b := range blocks {
		if b.Template == nil {
			continue
		}
		text := b.Template.render(b.Values, codes)
		n := max(b.RepeatCount, 1)
		for i := 0; i < n; i++ {
			items = append(items, Item{
				ID:       b.ID,
				Code:     b.Template.Code,
				Text:     text,
				IsInline: b.Template.IsInline,
			})
		}
	}
	return items
}

// ComposeBlocks — RenderBlocks + Compose.
func ComposeBlocks(blocks []Block) string {
	return Compose(RenderBlocks(blocks))
}
