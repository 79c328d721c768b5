package reporttemplar

import (
	"regexp"
	"strings"
)

// -----------------------------
// Токенизатор
// -----------------------------

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVar
	tokenOpen
	tokenClose
)

type token struct {
	kind tokenKind
	text string // сырой текст (tokenText) или выражение (tokenVar)
	tag  string // each | repeat | if
	arg  string
}

var blockTags = map[string]bool{"each": true, "repeat": true, "if": true}

// Тег блока, стоящий на строке один, не должен оставлять пустую строку в выводе.
var rxStandaloneTag = regexp.MustCompile(`(?m)^[ \t]*(\{\{[#/](?:each|repeat|if)\b[^{}\n]*\}\})[ \t]*(?:\r?\n|$)`)

func stripStandaloneTags(src string) string {
	return rxStandaloneTag.ReplaceAllString(src, "$1")
}

// matchClose ищет "}}", парный к "{{" в позиции start, с учётом вложенности.
// Возвращает индекс закрывающей пары или -1.
func matchClose(s string, start int) int {
	depth := 0
	for i := start; i+1 < len(s); {
		switch {
		case s[i] == '{' && s[i+1] == '{':
			depth++
			i += 2
		case s[i] == '}' && s[i+1] == '}':
			depth--
			if depth == 0 {
				return i
			}
			i += 2
		default:
			i++
		}
	}
	return -1
}

func lex(src string) []token {
	src = stripStandaloneTags(src)
	var toks []token
	emitText := func(s string) {
		if s == "" {
			return
		}
		// склеиваем соседние куски текста
		if n := len(toks); n > 0 && toks[n-1].kind == tokenText {
			toks[n-1].text += s
			return
		}
		toks = append(toks, token{kind: tokenText, text: s})
	}

	pos := 0
	for pos < len(src) {
		rel := strings.Index(src[pos:], "{{")
		if rel < 0 {
			emitText(src[pos:])
			break
		}
		start := pos + rel
		emitText(src[pos:start])
		end := matchClose(src, start)
		if end < 0 {
			// незакрытая скобка — текстом только сами "{{", дальше сканируем
			emitText("{{")
			pos = start + 2
			continue
		}
		raw := src[start : end+2]
		content := strings.TrimSpace(src[start+2 : end])
		pos = end + 2

		if strings.HasPrefix(content, "#") || strings.HasPrefix(content, "/") {
			word, arg := splitTagWord(content[1:])
			if !blockTags[word] {
				emitText(raw)
				continue
			}
			if content[0] == '#' {
				toks = append(toks, token{kind: tokenOpen, tag: word, arg: arg})
			} else {
				toks = append(toks, token{kind: tokenClose, tag: word})
			}
			continue
		}
		toks = append(toks, token{kind: tokenVar, text: content})
	}
	return toks
}

func splitTagWord(s string) (word, arg string) {
	i := 0
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isWordByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}
