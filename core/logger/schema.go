package logger

import "log/slog"

// defaultKeyOrder fixes the position of well-known keys in rendered lines so
// that logs stay scannable. Unknown keys keep their call-site order after
// these.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"payload",
	"username",
	"lang",
	"mode",
	"listen",
	"public_url",
	"backend",
	"store",
	"db",
	"host",
	"port",
	"phase",
	"from",
	"to",
	"target",
	"accumulated",
	"sessions",
	"action",
	"endpoint",
	"attempt",
	"attempts",
	"elapsed_ms",
	"delay",
	"duration",
	"err",
	"err_code",
	"error_kind",
	"cause",
	"reason",
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
