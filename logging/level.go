package logging

import "github.com/ugorji/go/codec"

// Level is an int representing the severity ranks, NOTSET through
// CRITICAL. A node whose threshold is left at Notset never filters:
// every message passes the node's own check.
type Level int8

const (
	Notset Level = iota
	Debug
	Info
	Warning
	Error
	Critical
)

// Unchanged is a sentinel accepted by lookup and configuration calls
// to leave the current level untouched.
const Unchanged Level = -1

var level2s = map[Level]string{
	Notset:   "unset",
	Debug:    "debug",
	Info:     "info",
	Warning:  "warning",
	Error:    "error",
	Critical: "critical",
}

var level4s = map[string]Level{
	"unset":    Notset,
	"notset":   Notset,
	"debug":    Debug,
	"info":     Info,
	"warning":  Warning,
	"error":    Error,
	"critical": Critical,
}

func (l Level) String() string {
	if s, ok := level2s[l]; ok {
		return s
	}
	return "unknown"
}

// ParseLevel maps a label to its Level. Anything unrecognized
// (including "") maps to Unchanged.
func ParseLevel(s string) (l Level) {
	l, ok := level4s[s]
	if !ok {
		l = Unchanged
	}
	return
}

func (l Level) CodecEncodeSelf(e *codec.Encoder) {
	e.MustEncode(level2s[l])
}

func (l *Level) CodecDecodeSelf(d *codec.Decoder) {
	var s string
	d.MustDecode(&s)
	*l = ParseLevel(s)
}

// clampLevel folds a requested threshold into [Notset, Critical].
func clampLevel(v Level) Level {
	if v < 0 {
		v = -v
	}
	if v > Critical {
		v = Critical
	}
	return v
}
