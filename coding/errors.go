// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// Code classifies an Error.
type Code int

// Error codes returned by Encode and the functions it calls.
const (
	DataOverflow Code = iota
	InvalidVersion
	InvalidMode
	InvalidErrorLevel
	InvalidMask
)

func (c Code) String() string {
	switch c {
	case DataOverflow:
		return "data overflow"
	case InvalidVersion:
		return "invalid version"
	case InvalidMode:
		return "invalid mode"
	case InvalidErrorLevel:
		return "invalid error level"
	case InvalidMask:
		return "invalid mask"
	}
	return "unknown error"
}

// Error reports a failure to encode a symbol. Every error Encode
// returns is an *Error; failures found by table lookups after
// validation, which indicate a bug rather than bad input, panic
// instead.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string { return "coding: " + e.Msg }

func errorf(c Code, format string, args ...any) *Error {
	return &Error{Code: c, Msg: fmt.Sprintf(format, args...)}
}
