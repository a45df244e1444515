package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tsawler/gridframe/model"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func writeMarkdown(buf *bytes.Buffer, t *model.UnifiedTable) {
	_, _ = fmt.Fprintf(buf, "| %s |\n", strings.Join(escapeAll(t.Columns), " | "))

	seps := make([]string, len(t.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(buf, "| %s |\n", strings.Join(seps, " | "))

	for _, rec := range t.Records {
		_, _ = fmt.Fprintf(buf, "| %s |\n", strings.Join(escapeAll(rec.Values()), " | "))
	}
}

func escapeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = markdownEscaper.Replace(v)
	}
	return out
}
