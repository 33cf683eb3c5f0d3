/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tscss "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tshtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsjs "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// ErrUnsupportedFile is returned for files with no known grammar.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ImportKind is the syntactic form an import takes.
type ImportKind int

const (
	// ImportStatic is `import ... from "x"` or `import "x"`.
	ImportStatic ImportKind = iota
	// ImportReexport is `export ... from "x"`.
	ImportReexport
	// ImportDynamic is `import("x")`.
	ImportDynamic
	// ImportRequire is `require("x")`.
	ImportRequire
	// ImportCSS is `@import "x"` in a stylesheet.
	ImportCSS
)

func (k ImportKind) String() string {
	switch k {
	case ImportReexport:
		return "export"
	case ImportDynamic:
		return "dynamic"
	case ImportRequire:
		return "require"
	case ImportCSS:
		return "css"
	default:
		return "import"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k ImportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Import is one specifier found in a source file. Line is 1-based.
type Import struct {
	Specifier string     `json:"specifier"`
	Kind      ImportKind `json:"kind"`
	Line      int        `json:"line"`
}

type grammar int

const (
	grammarNone grammar = iota
	grammarJS
	grammarVue
	grammarCSS
)

func grammarFor(path string) grammar {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx":
		return grammarJS
	case ".vue":
		return grammarVue
	case ".css":
		return grammarCSS
	default:
		return grammarNone
	}
}

// Supported reports whether Imports can parse path.
func Supported(path string) bool {
	return grammarFor(path) != grammarNone
}

// Imports extracts import specifiers from src, choosing the grammar by
// the extension of path. The grammars are error tolerant: TypeScript
// syntax the JavaScript grammar does not know yields error nodes, but the
// import statements around them are still found.
func Imports(path string, src []byte) ([]Import, error) {
	switch grammarFor(path) {
	case grammarJS:
		return parseWith(tsjs.Language(), src, 0, jsImports)
	case grammarCSS:
		return parseWith(tscss.Language(), src, 0, cssImports)
	case grammarVue:
		return vueImports(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
}

type collector func(root *sitter.Node, src []byte, lineOffset int) []Import

func parseWith(lang unsafe.Pointer, src []byte, lineOffset int, collect collector) ([]Import, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(lang)); err != nil {
		return nil, err
	}
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	defer tree.Close()

	return collect(tree.RootNode(), src, lineOffset), nil
}

// walk visits n and its descendants depth first.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), visit)
	}
}

func line(n *sitter.Node, offset int) int {
	return int(n.StartPosition().Row) + offset + 1
}

// unquote strips the surrounding quotes of a string literal node.
func unquote(n *sitter.Node, src []byte) string {
	text := n.Utf8Text(src)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' || first == '\'') && first == last {
			return text[1 : len(text)-1]
		}
	}
	return text
}

func jsImports(root *sitter.Node, src []byte, offset int) []Import {
	var out []Import
	add := func(n *sitter.Node, kind ImportKind) {
		if n == nil || n.Kind() != "string" {
			return
		}
		out = append(out, Import{Specifier: unquote(n, src), Kind: kind, Line: line(n, offset)})
	}

	walk(root, func(n *sitter.Node) {
		switch n.Kind() {
		case "import_statement":
			add(n.ChildByFieldName("source"), ImportStatic)
		case "export_statement":
			add(n.ChildByFieldName("source"), ImportReexport)
		case "call_expression":
			fn := n.ChildByFieldName("function")
			if fn == nil {
				return
			}
			var kind ImportKind
			switch {
			case fn.Kind() == "import":
				kind = ImportDynamic
			case fn.Kind() == "identifier" && fn.Utf8Text(src) == "require":
				kind = ImportRequire
			default:
				return
			}
			args := n.ChildByFieldName("arguments")
			if args == nil || args.NamedChildCount() == 0 {
				return
			}
			add(args.NamedChild(0), kind)
		}
	})
	return out
}

func cssImports(root *sitter.Node, src []byte, offset int) []Import {
	var out []Import
	walk(root, func(n *sitter.Node) {
		if n.Kind() != "import_statement" {
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			switch child.Kind() {
			case "string_value":
				out = append(out, Import{Specifier: unquote(child, src), Kind: ImportCSS, Line: line(child, offset)})
				return
			case "call_expression":
				// url("x") or url(x)
				if args := child.ChildByFieldName("arguments"); args != nil && args.NamedChildCount() > 0 {
					arg := args.NamedChild(0)
					out = append(out, Import{Specifier: unquote(arg, src), Kind: ImportCSS, Line: line(arg, offset)})
				}
				return
			}
		}
	})
	return out
}

// vueImports parses a single-file component with the HTML grammar and
// hands each script and style block to the matching grammar, keeping line
// numbers relative to the component file.
func vueImports(src []byte) ([]Import, error) {
	type block struct {
		text   []byte
		offset int
		css    bool
	}
	var blocks []block

	_, err := parseWith(tshtml.Language(), src, 0, func(root *sitter.Node, src []byte, _ int) []Import {
		walk(root, func(n *sitter.Node) {
			kind := n.Kind()
			if kind != "script_element" && kind != "style_element" {
				return
			}
			for i := uint(0); i < n.NamedChildCount(); i++ {
				raw := n.NamedChild(i)
				if raw.Kind() != "raw_text" {
					continue
				}
				blocks = append(blocks, block{
					text:   src[raw.StartByte():raw.EndByte()],
					offset: int(raw.StartPosition().Row),
					css:    kind == "style_element",
				})
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []Import
	for _, b := range blocks {
		collect, lang := collector(jsImports), tsjs.Language()
		if b.css {
			collect, lang = cssImports, tscss.Language()
		}
		found, err := parseWith(lang, b.text, b.offset, collect)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}
