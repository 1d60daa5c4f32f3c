package clip

import (
	"context"
	"fmt"
	"log/slog"
)

func (f Format) String() string {
	if f == FormatText {
		return "CF_TEXT"
	}
	return fmt.Sprintf("format(%d)", uint32(f))
}

func (h Handle) String() string { return fmt.Sprintf("%#x", uintptr(h)) }

// logPayload logs a clipboard transfer at DEBUG: format, byte size and a
// text preview up to 120 chars.
func logPayload(event string, format Format, payload []byte) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	preview := string(payload)
	if len(preview) > 120 {
		preview = preview[:120] + "…"
	}
	slog.Debug(event, "format", format, "size_bytes", len(payload), "preview", preview)
}

