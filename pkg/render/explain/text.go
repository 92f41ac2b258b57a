package explain

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/brandmark/pkg/mark"
)

// Text writes a plain-text account of the trace.
func Text(w io.Writer, t *mark.Trace) error {
	var b strings.Builder
	fmt.Fprintf(&b, "composite  %s\n", t.Composite)
	fmt.Fprintf(&b, "hash       %d\n", t.Hash)
	fmt.Fprintf(&b, "state      %d", t.InitialState)
	if t.Coerced() {
		b.WriteString(" (zero hash coerced)")
	}
	b.WriteString("\n")

	d := t.Decision
	fmt.Fprintf(&b, "decision   %s / %s / %d layers\n", d.Layout, d.Shape, d.Layers)
	fmt.Fprintf(&b, "elements   %d\n", t.Elements)
	fmt.Fprintf(&b, "draws      %d\n\n", len(t.Draws))

	for _, dr := range t.Draws {
		layer := "plan"
		if dr.Layer >= 0 {
			layer = fmt.Sprintf("L%d", dr.Layer)
		}
		fmt.Fprintf(&b, "%3d  %-5s %-10s %s\n", dr.Index, layer, dr.Stage, fmtValue(dr.Value))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
