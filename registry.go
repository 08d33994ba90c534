package wirebridge

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// encodings maps registered names to strategies. Using a concurrent map makes
// registration safe from init funcs of independently loaded packages.
var encodings = xsync.NewMap[string, Encoding]()

func init() {
	RegisterEncoding("hex", HexLower)
	RegisterEncoding("hex-lower", HexLower)
	RegisterEncoding("hex-upper", HexUpper)
}

// RegisterEncoding makes an encoding selectable by name, replacing any
// previous registration under the same name.
func RegisterEncoding(name string, e Encoding) {
	encodings.Store(name, e)
}

// LookupEncoding returns the encoding registered under name, for callers that
// pick a strategy from configuration rather than at compile time.
func LookupEncoding(name string) (Encoding, bool) {
	return encodings.Load(name)
}
