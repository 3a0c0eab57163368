//go:build swarmstepdebug

package priority

import "fmt"

// assertf panics with a formatted message when cond is false. Compiled in
// only under the swarmstepdebug build tag, mirroring the release/debug split
// in assert_release.go; a production build never pays for this check and
// never crashes mid-tick because of it.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("priority: invariant violation: "+format, args...))
	}
}
