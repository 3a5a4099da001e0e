package logging

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/joigmaga/go-mcast/runtimeutil"
)

const timeFmt = "2006/01/02:15:04:05"

const (
	// maxMsgLen bounds the rendered message body; longer bodies are
	// truncated, never rejected.
	maxMsgLen = 255
	// maxNameLen is the module name width in the record.
	maxNameLen = 8
)

// mainGID is the goroutine that first initialized the registry.
// Records emitted from any other goroutine carry a short tag derived
// from the emitting goroutine id.
var mainGID uint64

// gidTag returns "(xxxx) " for non-main goroutines, "" otherwise.
func gidTag() (s string) {
	gid := runtimeutil.GoroutineID()
	if gid == atomic.LoadUint64(&mainGID) {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], gid)
	h := fnv.New32a()
	h.Write(b[:])
	return fmt.Sprintf("(%04x) ", h.Sum32()&0xffff)
}

// record renders the single line shared by every node visited during
// the emission walk. A record reads:
//
//	2023/01/15:10:30:05 NET.ADDR: (ab3f) [warning] message body
//
// with the full dotted module path truncated to maxNameLen, the name
// separator dropped for the root's empty path, and the goroutine tag
// present only off the main goroutine. fmt handles mis-formatted calls by embedding a
// %! diagnostic in the body, which then passes through like any text.
func record(t time.Time, name string, level Level, format string, args []interface{}) []byte {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if len(msg) > maxMsgLen {
		msg = msg[:maxMsgLen]
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	b := make([]byte, 0, 48+len(name)+len(msg))
	b = t.AppendFormat(b, timeFmt)
	b = append(b, ' ')
	if name != "" {
		b = append(b, name...)
		b = append(b, ':', ' ')
	}
	b = append(b, gidTag()...)
	b = append(b, '[')
	b = append(b, level.String()...)
	b = append(b, ']', ' ')
	b = append(b, msg...)
	b = append(b, '\n')
	return b
}
