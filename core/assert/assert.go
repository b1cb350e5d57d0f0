// Copyright (C) 2024 bullno1
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package assert provides a fluent assertion library for tests.
//
// Assertions start with a target and a title, then chain the value under
// test and the condition:
//
//	assert.For(t, "decoded length").That(got).Equals(3)
//	assert.For(t, "Read(%v)", name).ThatError(err).Succeeded()
//
// Every terminal assertion returns whether it held, so callers can bail
// out of a test early:
//
//	if !assert.For(t, "setup").ThatError(err).Succeeded() {
//		return
//	}
package assert

import (
	"bytes"
	"fmt"
)

// Output matches the logging methods of the test host types.
// It is normally a *testing.T.
type Output interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Assertion is the start of an assertion line, holding the pending message
// that is flushed to the output if the assertion fails.
type Assertion struct {
	out   *bytes.Buffer
	to    Output
	fatal bool
}

// For starts a new assertion against t with the supplied title.
func For(t Output, msg string, args ...interface{}) *Assertion {
	a := &Assertion{out: &bytes.Buffer{}, to: t}
	fmt.Fprintf(a.out, msg, args...)
	a.out.WriteString("\n")
	return a
}

// Critical switches the assertion from Error to Fatal on failure.
func (a *Assertion) Critical() *Assertion {
	a.fatal = true
	return a
}

func (a *Assertion) printPretty(value interface{}) {
	switch value := value.(type) {
	case error, string:
		fmt.Fprintf(a.out, "`%v`", value)
	default:
		fmt.Fprint(a.out, value)
	}
}

// Got adds the standard "Got" entry to the pending output.
func (a *Assertion) Got(value interface{}) *Assertion {
	a.out.WriteString("    Got    ")
	a.printPretty(value)
	a.out.WriteString("\n")
	return a
}

// Expect adds the standard "Expect" entry to the pending output, with the
// comparison operator prepended.
func (a *Assertion) Expect(op string, value interface{}) *Assertion {
	a.out.WriteString("    Expect ")
	a.out.WriteString(op)
	a.out.WriteString(" ")
	a.printPretty(value)
	a.out.WriteString("\n")
	return a
}

// Compare adds both the "Got" and "Expect" entries to the pending output.
func (a *Assertion) Compare(value interface{}, op string, expect interface{}) *Assertion {
	return a.Got(value).Expect(op, expect)
}

// Test flushes the pending output if the condition does not hold, and
// returns the condition.
func (a *Assertion) Test(condition bool) bool {
	if condition {
		return true
	}
	if a.fatal {
		a.to.Fatal(a.out.String())
	} else {
		a.to.Error(a.out.String())
	}
	return false
}
