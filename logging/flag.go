package logging

import "flag"

// Config captures command-line configuration for the root logger.
// Register with Flags, call PostParseFlags after parsing, then Apply.
type Config struct {
	File     string
	LevelStr string
	SinkStr  string
	Level    Level
	Sink     Sink
}

func (p *Config) Flags(flags *flag.FlagSet) {
	flags.StringVar(&p.File, "log", "", "Log file for the root logger")
	flags.StringVar(&p.LevelStr, "loglevel", "", "Log Level Threshold")
	flags.StringVar(&p.SinkStr, "logsink", "", "Log output stream: stdout, stderr, stdlog or discard")
}

func (p *Config) PostParseFlags() {
	p.Level = ParseLevel(p.LevelStr)
	p.Sink = ParseSink(p.SinkStr)
}

// Apply configures the root logger and returns its handle.
func (p *Config) Apply() (h *Handle) {
	h = GetRoot(p.Level, p.Sink)
	if p.File != "" {
		h.SetLogFile(p.File)
	}
	return
}
