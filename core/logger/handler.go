package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
)

type logFormat int

const (
	formatJSON logFormat = iota
	formatKV
)

type handlerConfig struct {
	level    slog.Leveler
	writer   *bufferedWriter
	format   logFormat
	keyOrder []string
}

// structuredHandler renders records as single ordered lines, either
// key=value or JSON with deterministic key positions. The record message is
// treated as the event name unless an explicit event attribute is present.
type structuredHandler struct {
	cfg   handlerConfig
	rank  map[string]int
	attrs []slog.Attr
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	order := cfg.keyOrder
	if len(order) == 0 {
		order = defaultKeyOrder
	}
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	return &structuredHandler{cfg: cfg, rank: rank}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.cfg.level != nil {
		min = h.cfg.level.Level()
	}
	return level >= min
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// Groups are flattened; this schema is deliberately flat.
func (h *structuredHandler) WithGroup(string) slog.Handler { return h }

type field struct {
	key string
	val slog.Value
	pos int
}

func (h *structuredHandler) Handle(ctx context.Context, rec slog.Record) error {
	fields := make([]field, 0, rec.NumAttrs()+len(h.attrs)+8)
	seen := make(map[string]int)

	add := func(key string, val slog.Value) {
		if key == "" {
			return
		}
		if i, ok := seen[key]; ok {
			fields[i].val = val
			return
		}
		seen[key] = len(fields)
		fields = append(fields, field{key: key, val: val, pos: len(fields)})
	}

	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	add("ts", slog.StringValue(ts.UTC().Format(time.RFC3339Nano)))
	add("level", slog.StringValue(levelName(rec.Level)))

	for _, a := range h.attrs {
		add(a.Key, a.Value.Resolve())
	}
	rec.Attrs(func(a slog.Attr) bool {
		add(a.Key, a.Value.Resolve())
		return true
	})

	if _, ok := seen["event"]; !ok && rec.Message != "" {
		add("event", slog.StringValue(rec.Message))
	}
	if _, ok := seen["handler"]; !ok {
		if handler := HandlerFrom(ctx); handler != "" {
			add("handler", slog.StringValue(handler))
		}
	}
	if _, ok := seen["rid"]; !ok {
		if rid := RIDFrom(ctx); rid != "" {
			add("rid", slog.StringValue(rid))
		}
	}

	// Compact the rid for humans; JSON keeps the raw value alongside.
	if i, ok := seen["rid"]; ok {
		raw := fields[i].val.String()
		fields[i].val = slog.StringValue(CompactRID(raw))
		if h.cfg.format == formatJSON && raw != CompactRID(raw) {
			add("rid_full", slog.StringValue(raw))
		}
	}
	if h.cfg.format == formatJSON {
		add("ts_unix_nano", slog.Int64Value(ts.UnixNano()))
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return h.keyRank(fields[i].key) < h.keyRank(fields[j].key)
	})

	var line []byte
	if h.cfg.format == formatKV {
		line = renderKV(fields)
	} else {
		line = renderJSON(fields)
	}
	_, err := h.cfg.writer.Write(append(line, '\n'))
	return err
}

func (h *structuredHandler) keyRank(key string) int {
	if r, ok := h.rank[key]; ok {
		return r
	}
	return len(h.rank) + 1
}

func renderKV(fields []field) []byte {
	var b strings.Builder
	for i, f := range fields {
		if f.key == "rid_full" || f.key == "ts_unix_nano" {
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(kvValue(f.val))
	}
	return []byte(b.String())
}

func kvValue(v slog.Value) string {
	s := valueString(v)
	if s == "" || strings.ContainsAny(s, " =\"") {
		return strconv.Quote(s)
	}
	return s
}

func renderJSON(fields []field) []byte {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(f.key)
		b.Write(key)
		b.WriteByte(':')
		b.Write(jsonValue(f.val))
	}
	b.WriteByte('}')
	return []byte(b.String())
}

func jsonValue(v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindInt64:
		return []byte(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return []byte(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return []byte(strconv.FormatFloat(v.Float64(), 'f', -1, 64))
	case slog.KindBool:
		return []byte(strconv.FormatBool(v.Bool()))
	default:
		raw, err := json.Marshal(valueString(v))
		if err != nil {
			return []byte(`"?"`)
		}
		return raw
	}
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case slog.KindAny:
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}
