//go:build !unix

package terminal

func resetTerminalMode() {}
