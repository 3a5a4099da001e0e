package logging

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joigmaga/go-mcast/errorutil"
	"github.com/joigmaga/go-mcast/osutil"
	"github.com/joigmaga/go-mcast/runtimeutil"
)

// MaxModuleDepth bounds the number of dotted segments resolved during
// a lookup. Deeper names degrade: descent stops, the condition is
// logged through the deepest resolved node, and that node is
// returned.
const MaxModuleDepth = 32

// ErrNoInstance is returned when a lookup resolves no node at all.
// It indicates a logic bug in the registry, not a runtime condition.
var ErrNoInstance = errorutil.String("logging: internal: lookup produced no node")

// Logger is one vertex in the logging hierarchy. Each node owns its
// severity threshold, stream selection, optional log file and
// propagation flag, holds a strong link to its parent, and tracks its
// children through non-owning map entries that exist only while the
// child is referenced.
//
// Loggers are only obtained through GetRoot and GetLogger, wrapped in
// a Handle.
type Logger struct {
	name string // owned segment of the dotted path, "" for root
	path string // full dotted path from root, "" for root; printed in records

	// configuration state, guarded by mu.
	mu        sync.Mutex
	level     Level
	sink      Sink
	propagate bool
	f         *os.File
	fname     string // canonical path of the open log file, "" if none

	parent *Logger // strong upward link, nil for root

	// children is guarded by tmu. A node's refs and dead flag are
	// guarded by its parent's tmu; refs is additionally read/written
	// atomically on the paths that do not need the prune decision.
	tmu      sync.Mutex
	children map[string]*Logger
	refs     int32
	dead     bool
}

// Handle is an external strong reference to a Logger node. A node
// stays alive, with its configuration, while at least one handle
// references it or any of its descendants; Release drops the
// reference. Using a handle after Release is invalid.
type Handle struct {
	*Logger
	released uint32
}

// Release drops this handle's reference, pruning the node chain if
// nothing else keeps it alive. Only the first call has effect.
func (h *Handle) Release() (err error) {
	if atomic.CompareAndSwapUint32(&h.released, 0, 1) {
		err = h.Logger.release()
	}
	return
}

var reg struct {
	mu   sync.Mutex
	root *Logger
}

// getRoot returns the process root node, creating it lazily on first
// use. The root starts at Warning with no stream, does not propagate
// (it has no parent), and is never pruned.
func getRoot() (root *Logger) {
	reg.mu.Lock()
	if reg.root == nil {
		reg.root = &Logger{
			level:    Warning,
			sink:     Discard,
			children: make(map[string]*Logger),
		}
		atomic.StoreUint64(&mainGID, runtimeutil.GoroutineID())
	}
	root = reg.root
	reg.mu.Unlock()
	return
}

// GetRoot returns a handle on the singleton root node, applying the
// level and sink overrides unless the Unchanged/SinkUnchanged
// sentinels are passed.
func GetRoot(level Level, sink Sink) *Handle {
	root := getRoot()
	atomic.AddInt32(&root.refs, 1)
	root.SetLevel(level)
	root.SetSink(sink)
	return &Handle{Logger: root}
}

// GetLogger resolves a dotted module name to a node, creating any
// missing segments with default configuration (Notset threshold,
// Discard sink, propagation on), and applies the level and sink
// overrides to the final node. An empty name resolves to the root.
//
// Concurrent calls for the same not-yet-existing path produce exactly
// one node per segment; all callers end up referencing it.
func GetLogger(name string, level Level, sink Sink) (h *Handle, err error) {
	cur := getRoot()
	atomic.AddInt32(&cur.refs, 1) // walker's hold, exchanged downward per segment
	if name != "" {
		for i, seg := range strings.Split(name, ".") {
			if i >= MaxModuleDepth {
				cur.logf(Error, "max number of name segments (%d) exceeded for %q", MaxModuleDepth, name)
				break
			}
			cur = cur.child(seg)
		}
	}
	if cur == nil {
		err = ErrNoInstance
		return
	}
	cur.SetLevel(level)
	cur.SetSink(sink)
	h = &Handle{Logger: cur}
	return
}

// child returns a referenced node for segment seg under l, creating
// it when absent or when the existing entry vanished concurrently.
// The caller's reference on l is exchanged for one on the child.
func (l *Logger) child(seg string) (c *Logger) {
	path := seg
	if l.path != "" {
		path = l.path + "." + seg
	}
	l.tmu.Lock()
	c = l.children[seg]
	if c == nil || !c.retain() {
		c = &Logger{
			name:      seg,
			path:      path,
			level:     Notset,
			sink:      Discard,
			propagate: true,
			parent:    l,
			children:  make(map[string]*Logger),
			refs:      1,
		}
		l.children[seg] = c
		atomic.AddInt32(&l.refs, 1) // the child's strong link to l
	}
	l.tmu.Unlock()
	l.release()
	return
}

// retain acquires a reference. It fails only when the node was pruned
// between the child-map check and here. Called with the parent's tmu
// held.
func (l *Logger) retain() bool {
	if l.dead {
		return false
	}
	atomic.AddInt32(&l.refs, 1)
	return true
}

// release drops one reference. When the last reference to a childless
// node goes away the node is removed from its parent's child map, its
// log file is closed, and the release cascades to the parent. The
// root is never pruned. Locks are taken one node at a time, parent
// before child.
func (l *Logger) release() (err error) {
	if atomic.AddInt32(&l.refs, -1) != 0 {
		return
	}
	p := l.parent
	if p == nil {
		return
	}
	var prune bool
	p.tmu.Lock()
	// re-check under the parent's lock: a concurrent lookup may have
	// revived the node since the count hit zero.
	if !l.dead && atomic.LoadInt32(&l.refs) == 0 {
		l.tmu.Lock()
		if len(l.children) == 0 {
			l.dead = true
			delete(p.children, l.name)
			prune = true
		}
		l.tmu.Unlock()
	}
	p.tmu.Unlock()
	if prune {
		err = errorutil.Multi{l.closeFile(), p.release()}.NonNilError()
	}
	return
}

// Level returns the node's current threshold.
func (l *Logger) Level() (v Level) {
	l.mu.Lock()
	v = l.level
	l.mu.Unlock()
	return
}

// SetLevel sets the threshold, clamped to [Notset, Critical], and
// returns the previous value. Unchanged leaves it untouched.
func (l *Logger) SetLevel(level Level) (prev Level) {
	l.mu.Lock()
	prev = l.level
	if level != Unchanged {
		l.level = clampLevel(level)
	}
	l.mu.Unlock()
	return
}

// SetPropagation sets whether the emission walk continues past this
// node to its parent, and returns the previous mode.
func (l *Logger) SetPropagation(mode bool) (prev bool) {
	l.mu.Lock()
	prev = l.propagate
	l.propagate = mode
	l.mu.Unlock()
	return
}

// SetSink selects the node's output stream and returns the previous
// selection. SinkUnchanged preserves the current one.
func (l *Logger) SetSink(sink Sink) (prev Sink) {
	l.mu.Lock()
	prev = l.sink
	if sink != SinkUnchanged && sink >= Discard && sink <= Stdlog {
		l.sink = sink
	}
	l.mu.Unlock()
	return
}

// LogFile returns the canonical path of the node's open log file, or
// "" when none is attached.
func (l *Logger) LogFile() (s string) {
	l.mu.Lock()
	s = l.fname
	l.mu.Unlock()
	return
}

// SetLogFile points the node's file destination at path. The path is
// resolved to a canonical absolute form, creating the file when it
// does not yet exist. Setting the currently open path again is a
// no-op; a different path closes the current file and opens the new
// one in append mode. An empty path detaches and closes the current
// file. Failures are reported through the node's own error level,
// after the configuration lock has been released.
func (l *Logger) SetLogFile(path string) {
	var openErr, closeErr error

	l.mu.Lock()
	var newname string
	if path != "" {
		var err error
		if newname, err = osutil.AbsPath(path); err != nil {
			// not there yet: create it, then resolve again
			var f *os.File
			if f, err = os.Create(path); err == nil {
				f.Close()
				newname, err = osutil.AbsPath(path)
			}
			if err != nil {
				openErr = err
				newname = ""
			}
		}
	}
	if newname != l.fname {
		if l.f != nil {
			closeErr = l.f.Close()
			l.f = nil
		}
		l.fname = ""
		if newname != "" {
			f, err := os.OpenFile(newname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
			if err != nil {
				openErr = err
			} else {
				l.f = f
				l.fname = newname
			}
		}
	}
	l.mu.Unlock()

	if openErr != nil {
		l.logf(Error, "opening log file %q: %v", path, openErr)
	}
	if closeErr != nil {
		l.logf(Error, "closing previous log file: %v", closeErr)
	}
}

func (l *Logger) closeFile() (err error) {
	l.mu.Lock()
	if l.f != nil {
		err = l.f.Close()
		l.f = nil
		l.fname = ""
	}
	l.mu.Unlock()
	return
}

// Log emits a message at the given level. The record is rendered once
// and walked from this node toward the root; each visited node applies
// its own threshold and writes to its own stream and file under its
// own lock, and a node with propagation off ends the walk. One call
// may therefore produce zero, one or several physical record lines.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.logf(level, format, args...)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	rec := record(time.Now(), l.path, level, format, args)
	for n := l; n != nil; n = n.parent {
		n.mu.Lock()
		if level >= n.level {
			if w := n.sink.writer(); w != nil {
				w.Write(rec)
			}
			if n.f != nil {
				n.f.Write(rec)
			}
		}
		stop := !n.propagate
		n.mu.Unlock()
		if stop {
			break
		}
	}
}

func (l *Logger) Debug(format string, args ...interface{})    { l.logf(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})     { l.logf(Info, format, args...) }
func (l *Logger) Warning(format string, args ...interface{})  { l.logf(Warning, format, args...) }
func (l *Logger) Error(format string, args ...interface{})    { l.logf(Error, format, args...) }
func (l *Logger) Critical(format string, args ...interface{}) { l.logf(Critical, format, args...) }

// Reset tears down the registry: handles held by declarative
// configuration are released, every open log file in the tree is
// closed, and the root is discarded so the next lookup starts from a
// fresh tree. Handles callers still hold keep pointing into the old
// tree. Intended for tests and orderly shutdown.
func Reset() (err error) {
	merrs := errorutil.Multi{releaseConfigured()}
	reg.mu.Lock()
	root := reg.root
	reg.root = nil
	atomic.StoreUint64(&mainGID, 0)
	reg.mu.Unlock()
	if root != nil {
		merrs = append(merrs, closeTree(root))
	}
	return merrs.NonNilError()
}

// closeTree closes open files across a detached tree, top down.
func closeTree(n *Logger) error {
	merrs := errorutil.Multi{n.closeFile()}
	n.tmu.Lock()
	kids := make([]*Logger, 0, len(n.children))
	for _, c := range n.children {
		kids = append(kids, c)
	}
	n.tmu.Unlock()
	for _, c := range kids {
		merrs = append(merrs, closeTree(c))
	}
	return merrs.NonNilError()
}
