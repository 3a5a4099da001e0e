package logging

import (
	"os"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/joigmaga/go-mcast/errorutil"
)

// ModuleConfig is the declarative configuration for one node.
// Empty level/sink strings leave the node's current value untouched.
type ModuleConfig struct {
	Level     string `yaml:"level"`
	Sink      string `yaml:"sink"`
	File      string `yaml:"file"`
	Propagate *bool  `yaml:"propagate"`
}

// TreeConfig configures the root node and any number of dotted module
// names in one document.
type TreeConfig struct {
	Root    ModuleConfig            `yaml:"root"`
	Modules map[string]ModuleConfig `yaml:"modules"`
}

// configured keeps the handles created declaratively, so configured
// nodes are not pruned before anyone looks them up. Reset releases
// them.
var configured struct {
	mu sync.Mutex
	hs []*Handle
}

func keep(h *Handle) {
	configured.mu.Lock()
	configured.hs = append(configured.hs, h)
	configured.mu.Unlock()
}

func releaseConfigured() error {
	configured.mu.Lock()
	hs := configured.hs
	configured.hs = nil
	configured.mu.Unlock()
	var merrs errorutil.Multi
	for _, h := range hs {
		merrs = append(merrs, h.Release())
	}
	return merrs.NonNilError()
}

// Configure applies a YAML tree configuration document, e.g.
//
//	root:
//	  level: error
//	  sink: stderr
//	modules:
//	  NET.ADDR:
//	    level: debug
//	    file: /var/log/addr.log
//	    propagate: false
func Configure(data []byte) (err error) {
	var tc TreeConfig
	if err = yaml.Unmarshal(data, &tc); err != nil {
		return
	}
	return ConfigureTree(&tc)
}

// ConfigureFile reads and applies a YAML tree configuration file.
func ConfigureFile(path string) (err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	return Configure(data)
}

// ConfigureTree applies an already-parsed tree configuration.
func ConfigureTree(tc *TreeConfig) (err error) {
	h := GetRoot(ParseLevel(tc.Root.Level), ParseSink(tc.Root.Sink))
	applyModule(h, &tc.Root)

	// sorted for a deterministic application order
	names := make([]string, 0, len(tc.Modules))
	for name := range tc.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mc := tc.Modules[name]
		var mh *Handle
		if mh, err = GetLogger(name, ParseLevel(mc.Level), ParseSink(mc.Sink)); err != nil {
			return
		}
		applyModule(mh, &mc)
	}
	return
}

func applyModule(h *Handle, mc *ModuleConfig) {
	if mc.Propagate != nil {
		h.SetPropagation(*mc.Propagate)
	}
	if mc.File != "" {
		h.SetLogFile(mc.File)
	}
	keep(h)
}
