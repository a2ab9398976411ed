//go:build !galloc_debug

package galloc

// debugEnabled is false here, true in debug_on.go, never both (the two
// files' build tags are complementary).
const debugEnabled = false

// debugLog is a no-op in the default build; zap is not even linked in.
func debugLog(format string, args ...any) {}
