package codegen

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"arrayv-music/debug"
	"arrayv-music/translate"
)

const namespacePrefix = "io.github.arrayv."

// Options selects the flavour of generated source. None of them change what
// the events mean.
type Options struct {
	// HighPrecisionTiming targets the patched ArrayV build: Delays.sleep with
	// fractional milliseconds instead of Thread.sleep.
	HighPrecisionTiming bool
	// LegacyNamespace targets ArrayV 4.0, whose packages have no io.github.arrayv prefix
	LegacyNamespace bool
	MaxLines        int
	ClassName       string
}

func (o Options) className() string {
	if o.ClassName == "" {
		return "MusicSort"
	}
	return o.ClassName
}

const indent = "    "

var sortTemplate = template.Must(template.New("sort").Parse(`
package io.github.arrayv.sorts.misc;

import io.github.arrayv.main.ArrayVisualizer;
import io.github.arrayv.sorts.templates.Sort;

public final class {{.Class}} extends Sort {
    public {{.Class}}(ArrayVisualizer arrayVisualizer) {
        super(arrayVisualizer);

        this.setSortListName("Music");
        this.setRunAllSortsName("Music Sort");
        this.setRunSortName("Music Sort");
        this.setCategory("Miscellaneous Sorts");
        this.setBucketSort(false);
        this.setRadixSort(false);
        this.setUnreasonablySlow(false);
        this.setUnreasonableLimit(0);
        this.setBogoSort(false);
    }

    private int[] a;
    private int   l;

{{range .Methods}}    private void {{.Name}}() {{$.Throws}}{
{{.Body}}    }

{{end}}    @Override
    public void runSort(int[] array, int length, int bucketCount) throws Exception {
        a = array;
        l = length;
{{range .Methods}}        {{.Name}}();
{{end}}    }
}
`))

type method struct {
	Name string
	Body string
}

type sortSource struct {
	Class   string
	Throws  string
	Methods []method
}

// Render writes the Sort subclass playing events. events should already be
// coalesced.
func Render(w io.Writer, events []translate.Event, opts Options) error {
	src := sortSource{Class: opts.className()}
	if !opts.HighPrecisionTiming {
		src.Throws = "throws Exception "
	}

	units := Chunk(events, opts.MaxLines)
	for i, unit := range units {
		var body strings.Builder
		for _, ev := range unit {
			writeStatement(&body, ev, opts)
		}
		src.Methods = append(src.Methods, method{Name: fmt.Sprintf("m%d", i), Body: body.String()})
	}
	debug.Log("codegen", "%d events in %d methods", len(events), len(units))

	var buf bytes.Buffer
	if err := sortTemplate.Execute(&buf, src); err != nil {
		return err
	}
	out := buf.Bytes()
	if opts.LegacyNamespace {
		out = bytes.ReplaceAll(out, []byte(namespacePrefix), nil)
	}
	_, err := w.Write(out)
	return err
}

func writeStatement(b *strings.Builder, ev translate.Event, opts Options) {
	switch ev.Op {
	case translate.Mark:
		fmt.Fprintf(b, "%s%sa[%d] = (int)(l * %s);\n", indent, indent, ev.Slot, javaDouble(ev.Sound))
		fmt.Fprintf(b, "%s%sHighlights.markArray(%d, %d);\n", indent, indent, ev.Slot, ev.Slot)
	case translate.Clear:
		fmt.Fprintf(b, "%s%sHighlights.clearMark(%d);\n", indent, indent, ev.Slot)
	case translate.Wait:
		if s, ok := formatSleep(ev, opts); ok {
			fmt.Fprintf(b, "%s%s%s\n", indent, indent, s)
		}
	}
}

func javaDouble(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatSleep renders a wait, or reports false when it rounds to nothing
func formatSleep(ev translate.Event, opts Options) (string, bool) {
	msec := float64(ev.Duration) / 1e6
	if opts.HighPrecisionTiming {
		v := math.Round(msec*1e4) / 1e4
		if v == 0 {
			return "", false
		}
		return fmt.Sprintf("Delays.sleep(%s);", javaDouble(v)), true
	}
	v := int64(math.RoundToEven(msec))
	if v == 0 {
		return "", false
	}
	return fmt.Sprintf("Thread.sleep(%d);", v), true
}

// WriteFile renders events to path
func WriteFile(path string, events []translate.Event, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, events, opts); err != nil {
		return errors.Wrap(err, "render java source")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
