//go:build !linux

package logger

// IsTerminal always reports false off Linux; "auto" falls back to text output.
func IsTerminal(uintptr) bool {
	return false
}
