// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package footer

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind classifies the errors reported by the footer decoder.
// A Kind is itself an error so callers may write:
//
//	if errors.Is(err, footer.BufferTooSmall) { ... }
type Kind int

const (
	UnknownBoard Kind = iota + 1
	InvalidChannelCount
	InvalidDataDomain
	InvalidDataLayout
	InvalidRecordSize
	InvalidRecordCount
	BufferTooSmall
	FooterCountMismatch
	FooterTypeMismatch
)

var kindNames = [...]string{
	UnknownBoard:        "unknown board",
	InvalidChannelCount: "invalid channel count",
	InvalidDataDomain:   "invalid data domain",
	InvalidDataLayout:   "invalid data layout",
	InvalidRecordSize:   "invalid record size",
	InvalidRecordCount:  "invalid record count",
	BufferTooSmall:      "buffer too small",
	FooterCountMismatch: "footer count mismatch",
	FooterTypeMismatch:  "footer type mismatch",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) Error() string { return "footer: " + k.String() }

// Status returns the stable status code associated with k.
func (k Kind) Status() int { return int(k) }

// Error describes a failure to validate a configuration or to lay out
// footers in a buffer.
type Error struct {
	Kind Kind
	Msg  string
}

func errorf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return "footer: " + e.Msg
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Status returns 0 when err is nil, the status code of its Kind when err
// is (or wraps) an *Error or a Kind, and -1 otherwise.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var (
		e *Error
		k Kind
	)
	switch {
	case errors.As(err, &e):
		return e.Kind.Status()
	case errors.As(err, &k):
		return k.Status()
	}
	return -1
}

// Report writes the message of err into dst and returns the status code
// of err together with the number of bytes written.
// Messages longer than dst are truncated; a nil error writes nothing.
func Report(dst []byte, err error) (status, n int) {
	status = Status(err)
	if err == nil {
		return status, 0
	}
	n = copy(dst, err.Error())
	return status, n
}
