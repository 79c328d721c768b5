package reporttemplar

// -----------------------------
// AST
// -----------------------------

type node interface{}

type rootNode struct {
	children []node
}

type textNode struct {
	text string
}

type varNode struct {
	expr string
}

type blockNode struct {
	tag      string // each | repeat | if
	arg      string
	children []node
}

// Tree — разобранный шаблон отчёта. Неизменяем, можно рендерить сколько угодно раз.
type Tree struct {
	root *rootNode
}

// Parse строит дерево из исходника шаблона. Ошибок не бывает: битая разметка
// остаётся текстом, лишние закрывающие теги отбрасываются.
func Parse(src string) *Tree {
	return &Tree{root: parseTokens(lex(src))}
}

func parseTokens(toks []token) *rootNode {
	root := &rootNode{}
	type stackItem struct {
		tag    string // "" для корня
		target *[]node
	}
	stack := []stackItem{{target: &root.children}}

	for _, tk := range toks {
		top := stack[len(stack)-1]
		switch tk.kind {
		case tokenText:
			*top.target = append(*top.target, &textNode{text: tk.text})
		case tokenVar:
			*top.target = append(*top.target, &varNode{expr: tk.text})
		case tokenOpen:
			bn := &blockNode{tag: tk.tag, arg: tk.arg}
			*top.target = append(*top.target, bn)
			stack = append(stack, stackItem{tag: tk.tag, target: &bn.children})
		case tokenClose:
			// чужой или лишний закрывающий тег молча игнорируем
			if len(stack) > 1 && top.tag == tk.tag {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return root
}
