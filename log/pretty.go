package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler. Styles come from a
// renderer bound to the output, so colors are dropped automatically when the
// output is not a color terminal.
type palette struct {
	key    lipgloss.Style
	str    lipgloss.Style
	num    lipgloss.Style
	dur    lipgloss.Style
	tim    lipgloss.Style
	null   lipgloss.Style
	yes    lipgloss.Style
	no     lipgloss.Style
	levels [4]lipgloss.Style // trace/debug, info, warn, error
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:  fg("8"),
		str:  fg("6"),
		num:  fg("3"),
		dur:  fg("5"),
		tim:  fg("4"),
		null: fg("8"),
		yes:  fg("2"),
		no:   fg("1"),
		levels: [4]lipgloss.Style{
			fg("4").Bold(true),
			fg("2").Bold(true),
			fg("3").Bold(true),
			fg("1").Bold(true),
		},
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.levels[3]
	case l >= slog.LevelWarn:
		return p.levels[2]
	case l >= slog.LevelInfo:
		return p.levels[1]
	default:
		return p.levels[0]
	}
}

// prettyHandler renders records for people: unquoted values colored by
// kind, either as one key=value line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	json   bool
	mu     *sync.Mutex
	w      io.Writer
	colors *palette
	preset []slog.Attr // from WithAttrs, already qualified by group
	prefix string      // current group path, "a.b."
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		json:   json,
		mu:     &sync.Mutex{},
		w:      w,
		colors: newPalette(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.preset = append(h.preset[:len(h.preset):len(h.preset)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.preset)+4)

	if !r.Time.IsZero() {
		attrs = append(attrs, slog.Time(slog.TimeKey, r.Time))
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			attrs = append(attrs, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))
	attrs = append(attrs, h.preset...)

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	attrs = append(attrs, h.qualify(own)...)

	var buf bytes.Buffer

	if h.json {
		h.writeObject(&buf, attrs)
	} else {
		h.writeLine(&buf, attrs)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// resolve applies ReplaceAttr and flattens groups into dotted keys.
func (h *prettyHandler) resolve(a slog.Attr, emit func(slog.Attr)) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			if a.Key != "" {
				g.Key = a.Key + "." + g.Key
			}

			h.resolve(g, emit)
		}

		return
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	emit(a)
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, attrs []slog.Attr) {
	for _, a := range attrs {
		h.resolve(a, func(a slog.Attr) {
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.colors.key.Render(a.Key))
			buf.WriteByte('=')
			buf.WriteString(h.value(a.Key, a.Value))
		})
	}
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, attrs []slog.Attr) {
	buf.WriteString("{")

	first := true

	for _, a := range attrs {
		h.resolve(a, func(a slog.Attr) {
			if !first {
				buf.WriteByte(',')
			}

			first = false

			buf.WriteString("\n  ")
			buf.WriteString(h.colors.key.Render(a.Key))
			buf.WriteString(": ")
			buf.WriteString(h.value(a.Key, a.Value))
		})
	}

	buf.WriteString("\n}")
}

func (h *prettyHandler) value(key string, v slog.Value) string {
	c := h.colors

	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey {
			return c.level(levelOf(v.String())).Render(v.String())
		}

		return c.str.Render(v.String())

	case slog.KindInt64:
		return c.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return c.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return c.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return c.yes.Render("true")
		}

		return c.no.Render("false")

	case slog.KindDuration:
		return c.dur.Render(v.Duration().String())

	case slog.KindTime:
		return c.tim.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			return c.null.Render("null")

		case slog.Level:
			return c.level(a).Render(strings.ToUpper(Level(a).String()))

		case error:
			return c.no.Render(a.Error())
		}
	}

	return c.str.Render(v.String())
}

// levelOf converts a rendered level name back to a slog.Level for choosing
// its color. Unknown names map to [slog.LevelInfo].
func levelOf(s string) slog.Level {
	var l Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return slog.Level(l)
}
