package logging

import (
	"io"
	"os"

	"github.com/ugorji/go/codec"
)

// Sink selects the output stream a node writes satisfied records to.
// Stream selection is independent of any log file attached with
// SetLogFile: a node emits to its stream and to its file.
type Sink int8

const (
	Discard Sink = iota
	Stdout
	Stderr
	Stdlog
)

// SinkUnchanged is a sentinel accepted by lookup and configuration
// calls to preserve the current stream selection.
const SinkUnchanged Sink = -1

// The stream writers are variables so tests can capture emission.
// Stdlog maps to the standard error stream (there is no separate
// buffered log stream on this platform).
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdlog io.Writer = os.Stderr
)

// writer returns the stream for s, nil for Discard.
func (s Sink) writer() io.Writer {
	switch s {
	case Stdout:
		return stdout
	case Stderr:
		return stderr
	case Stdlog:
		return stdlog
	}
	return nil
}

var sink2s = map[Sink]string{
	Discard: "discard",
	Stdout:  "stdout",
	Stderr:  "stderr",
	Stdlog:  "stdlog",
}

var sink4s = map[string]Sink{
	"discard": Discard,
	"devnull": Discard,
	"stdout":  Stdout,
	"stderr":  Stderr,
	"stdlog":  Stdlog,
}

func (s Sink) String() string {
	if v, ok := sink2s[s]; ok {
		return v
	}
	return "unknown"
}

// ParseSink maps a label to its Sink. Anything unrecognized
// (including "") maps to SinkUnchanged.
func ParseSink(s string) (v Sink) {
	v, ok := sink4s[s]
	if !ok {
		v = SinkUnchanged
	}
	return
}

func (s Sink) CodecEncodeSelf(e *codec.Encoder) {
	e.MustEncode(sink2s[s])
}

func (s *Sink) CodecDecodeSelf(d *codec.Decoder) {
	var v string
	d.MustDecode(&v)
	*s = ParseSink(v)
}
