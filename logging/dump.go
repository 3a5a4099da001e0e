package logging

import (
	"sort"
	"sync/atomic"

	"github.com/ugorji/go/codec"
)

var jsonHandle codec.JsonHandle

type nodeDump struct {
	Name      string      `codec:"name"`
	Level     Level       `codec:"level"`
	Sink      Sink        `codec:"sink"`
	File      string      `codec:"file,omitempty"`
	Propagate bool        `codec:"propagate"`
	Refs      int32       `codec:"refs"`
	Children  []*nodeDump `codec:"children,omitempty"`
}

// DumpTree returns a JSON snapshot of the live logger tree, for
// diagnostics. The snapshot is taken one node at a time; it is not an
// atomic view under concurrent mutation.
func DumpTree() []byte {
	reg.mu.Lock()
	root := reg.root
	reg.mu.Unlock()
	if root == nil {
		return []byte("null")
	}
	var b []byte
	codec.NewEncoderBytes(&b, &jsonHandle).MustEncode(dumpNode(root))
	return b
}

func dumpNode(n *Logger) (d *nodeDump) {
	d = &nodeDump{Name: n.name, Refs: atomic.LoadInt32(&n.refs)}
	n.mu.Lock()
	d.Level, d.Sink, d.File, d.Propagate = n.level, n.sink, n.fname, n.propagate
	n.mu.Unlock()
	n.tmu.Lock()
	kids := make([]*Logger, 0, len(n.children))
	for _, c := range n.children {
		kids = append(kids, c)
	}
	n.tmu.Unlock()
	sort.Slice(kids, func(i, j int) bool { return kids[i].name < kids[j].name })
	for _, c := range kids {
		d.Children = append(d.Children, dumpNode(c))
	}
	return
}
