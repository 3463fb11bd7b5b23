// Package render turns a skeleton value into the pretty-printed text shown to
// users, with field documentation as trailing line comments.
package render

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/luchuanbaker/MyPojoToJson/internal/skeleton"
)

const DefaultIndent = "    "

type Options struct {
	Indent string
	// Width is the column limit under which short arrays stay on one line.
	Width int
	// Docs appends "// text" after each documented field. Without it the
	// output is plain JSON.
	Docs bool
}

func (o Options) indent() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

// Render formats v. The result ends with a newline.
func Render(v skeleton.Value, opts Options) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal skeleton")
	}
	out := pretty.PrettyOptions(raw, &pretty.Options{
		Width:    opts.width(),
		Indent:   opts.indent(),
		SortKeys: false,
	})
	return annotate(out, opts.Docs)
}

// annotate removes the documentation sibling keys and, when docs is set,
// moves their text onto the line of the field that follows.
func annotate(src []byte, docs bool) ([]byte, error) {
	var buf bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), len(src)+1)

	pending := ""
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, `"`+skeleton.DocKeyPrefix) {
			if docs {
				pending = docText(trimmed)
			}
			continue
		}
		buf.WriteString(line)
		if pending != "" {
			buf.WriteString("  // ")
			buf.WriteString(pending)
			pending = ""
		}
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "annotate output")
	}
	return buf.Bytes(), nil
}

// docText reads the value of a `"key": "value",` line.
func docText(line string) string {
	entry := "{" + strings.TrimSuffix(line, ",") + "}"
	var text string
	gjson.Parse(entry).ForEach(func(_, value gjson.Result) bool {
		text = value.String()
		return false
	})
	return FormatDoc(text)
}

// FormatDoc flattens a /** ... */ comment into a single line.
func FormatDoc(doc string) string {
	doc = strings.TrimSpace(doc)
	doc = strings.TrimPrefix(doc, "/**")
	doc = strings.TrimSuffix(doc, "*/")

	var parts []string
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
