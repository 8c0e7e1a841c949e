package main

import (
	"errors"

	"github.com/yunginnanet/fr202-adc/pkg/fr202"
)

// Exit codes.
const (
	exitOK = iota
	exitFailure
	exitUsage
	exitDevice
	exitFraming
	exitTimeout
)

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	switch fr202.KindOf(err) {
	case fr202.KindInvalidChannel:
		return exitUsage
	case fr202.KindDevice:
		return exitDevice
	case fr202.KindFraming:
		return exitFraming
	case fr202.KindTimeout:
		return exitTimeout
	default:
		return exitFailure
	}
}
