//go:build !windows

package main

// enableVT is a no-op: POSIX terminals handle ANSI sequences as is.
func enableVT() error { return nil }
