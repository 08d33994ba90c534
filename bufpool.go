package wirebridge

import (
	"bytes"
	"sync"
)

// bufPool reuses scratch buffers for slice-oriented encoding. Wire payloads
// are typically small, so a 4KB default avoids re-allocations for the common
// case without pinning large buffers.
var bufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
