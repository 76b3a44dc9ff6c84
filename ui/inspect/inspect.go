// Package inspect renders dropdown state as syntax-highlighted JSON.
package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/miosa/osa-dropdown/style"
)

var jsonLexer = chroma.Coalesce(lexerFor("json"))

func lexerFor(name string) chroma.Lexer {
	if l := lexers.Get(name); l != nil {
		return l
	}
	return lexers.Fallback
}

// chromaStyle returns the Chroma style that best matches the active theme.
func chromaStyle() *chroma.Style {
	if style.IsDark() {
		if s := styles.Get("monokai"); s != nil {
			return s
		}
	}
	if s := styles.Get("github"); s != nil {
		return s
	}
	return styles.Fallback
}

// ttyFormatter returns the best available terminal formatter.
func ttyFormatter() chroma.Formatter {
	if f := formatters.Get("terminal16m"); f != nil {
		return f
	}
	if f := formatters.Get("terminal256"); f != nil {
		return f
	}
	return formatters.Fallback
}

// JSON encodes v as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// Highlight colors a JSON document for the terminal. The input is returned
// unchanged when highlighting fails.
func Highlight(src string) string {
	if src == "" {
		return src
	}
	it, err := jsonLexer.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var buf bytes.Buffer
	if err := ttyFormatter().Format(&buf, chromaStyle(), it); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Render encodes v and highlights it. plain skips highlighting.
func Render(v any, plain bool) (string, error) {
	src, err := JSON(v)
	if err != nil {
		return "", err
	}
	if plain {
		return src, nil
	}
	return Highlight(src), nil
}
