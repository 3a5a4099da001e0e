package logging

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
)

func TestConfigureYAML(t *testing.T) {
	resetForTest(t)
	fpath := filepath.Join(t.TempDir(), "na.log")
	doc := `
root:
  level: error
  sink: stderr
modules:
  NET.ADDR:
    level: debug
    sink: stdout
    propagate: false
    file: ` + fpath + `
`
	require.NoError(t, Configure([]byte(doc)))

	// configured nodes survive with no caller handles: Configure holds them
	h, err := GetLogger("NET.ADDR", Unchanged, SinkUnchanged)
	require.NoError(t, err)
	defer h.Release()
	require.Equal(t, Debug, h.Level())
	require.Equal(t, Stdout, h.SetSink(SinkUnchanged))
	require.NotEmpty(t, h.LogFile())

	rh := GetRoot(Unchanged, SinkUnchanged)
	defer rh.Release()
	require.Equal(t, Error, rh.Level())
	require.Equal(t, Stderr, rh.SetSink(SinkUnchanged))
}

func TestConfigureFile(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "logging.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("root:\n  level: info\n"), 0644))
	require.NoError(t, ConfigureFile(cfg))

	rh := GetRoot(Unchanged, SinkUnchanged)
	defer rh.Release()
	require.Equal(t, Info, rh.Level())
}

func TestConfigureBadYAML(t *testing.T) {
	resetForTest(t)
	require.Error(t, Configure([]byte("root: [not, a, mapping")))
}

func TestConfigFlags(t *testing.T) {
	resetForTest(t)
	var c Config
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	c.Flags(fs)
	require.NoError(t, fs.Parse([]string{"-loglevel", "info", "-logsink", "stdout"}))
	c.PostParseFlags()
	require.Equal(t, Info, c.Level)
	require.Equal(t, Stdout, c.Sink)

	h := c.Apply()
	defer h.Release()
	require.Equal(t, Info, h.Level())
	require.Equal(t, Stdout, h.SetSink(SinkUnchanged))
}

func TestParseLevelAndSink(t *testing.T) {
	require.Equal(t, Debug, ParseLevel("debug"))
	require.Equal(t, Critical, ParseLevel("critical"))
	require.Equal(t, Unchanged, ParseLevel(""))
	require.Equal(t, Unchanged, ParseLevel("nonsense"))
	require.Equal(t, "unset", Notset.String())
	require.Equal(t, "unknown", Level(99).String())

	require.Equal(t, Stdlog, ParseSink("stdlog"))
	require.Equal(t, Discard, ParseSink("devnull"))
	require.Equal(t, SinkUnchanged, ParseSink(""))
	require.Equal(t, "stderr", Stderr.String())
}

func TestLevelCodecRoundTrip(t *testing.T) {
	var jh codec.JsonHandle
	var b []byte
	codec.NewEncoderBytes(&b, &jh).MustEncode(Warning)
	require.Equal(t, `"warning"`, string(b))
	var l Level
	codec.NewDecoderBytes(b, &jh).MustDecode(&l)
	require.Equal(t, Warning, l)

	b = b[:0]
	codec.NewEncoderBytes(&b, &jh).MustEncode(Stdlog)
	require.Equal(t, `"stdlog"`, string(b))
	var s Sink
	codec.NewDecoderBytes(b, &jh).MustDecode(&s)
	require.Equal(t, Stdlog, s)
}

func TestDumpTree(t *testing.T) {
	resetForTest(t)
	require.Equal(t, "null", string(DumpTree()))

	h, err := GetLogger("A.B", Debug, Stderr)
	require.NoError(t, err)
	defer h.Release()

	out := string(DumpTree())
	require.Contains(t, out, `"name":"A"`)
	require.Contains(t, out, `"name":"B"`)
	require.Contains(t, out, `"level":"debug"`)
	require.Contains(t, out, `"sink":"stderr"`)
}
