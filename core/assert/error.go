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

package assert

import "github.com/pkg/errors"

// OnError is the result of calling ThatError on an Assertion.
// It provides assertion tests specific to error values.
type OnError struct {
	*Assertion
	err error
}

// ThatError returns an OnError for the specified error value.
func (a *Assertion) ThatError(err error) OnError {
	return OnError{Assertion: a, err: err}
}

// Succeeded asserts that the error value was nil.
func (o OnError) Succeeded() bool {
	return o.Compare(o.err, "==", nil).Test(o.err == nil)
}

// Failed asserts that the error value was a non-nil error.
func (o OnError) Failed() bool {
	return o.Compare(o.err, "!=", nil).Test(o.err != nil)
}

// Equals asserts that the error value matches the expected error exactly.
func (o OnError) Equals(expect error) bool {
	return o.Compare(o.err, "==", expect).Test(o.err == expect)
}

// CausedBy asserts that the root cause of the error value, as reported by
// errors.Cause, is the expected error.
func (o OnError) CausedBy(expect error) bool {
	return o.Compare(o.err, "caused by", expect).Test(errors.Cause(o.err) == expect)
}

// HasMessage asserts that the error value's message is the expected string.
func (o OnError) HasMessage(expect string) bool {
	got := ""
	if o.err != nil {
		got = o.err.Error()
	}
	return o.Compare(got, "==", expect).Test(got == expect)
}
