package transport

import (
	"runtime"

	"github.com/kbukum/gofetch/fetch"
)

// Detect reports the runtime environment. Only js/wasm builds are
// browser-like.
func Detect() fetch.Environment {
	return fetch.Environment{Browser: runtime.GOOS == "js"}
}
