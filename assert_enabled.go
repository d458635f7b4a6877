//go:build assert_enabled

package main

// Assert panics if condition is false. Asserts are only compiled in with the
// assert_enabled build tag.
func Assert(condition bool) {
	if !condition {
		panic("assert failed")
	}
}
