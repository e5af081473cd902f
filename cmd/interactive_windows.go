//go:build windows

package main

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// enableVT turns on virtual terminal input and output so the picker receives
// ANSI arrow sequences and its redraws are interpreted by the console.
func enableVT() error {
	if err := addConsoleMode(os.Stdin, windows.ENABLE_VIRTUAL_TERMINAL_INPUT); err != nil {
		return errors.Wrap(err, "enable vt input")
	}
	if err := addConsoleMode(os.Stdout, windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return errors.Wrap(err, "enable vt output")
	}
	return nil
}

func addConsoleMode(f *os.File, flag uint32) error {
	h := windows.Handle(f.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return err
	}
	return windows.SetConsoleMode(h, mode|flag)
}
