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

import (
	"bytes"
	"strings"
)

// OnString is the result of calling ThatString on an Assertion.
type OnString struct {
	*Assertion
	value string
}

// ThatString returns an OnString for the specified string value.
func (a *Assertion) ThatString(value string) OnString {
	return OnString{Assertion: a, value: value}
}

// Equals asserts that the string matches the expected string exactly.
func (o OnString) Equals(expect string) bool {
	return o.Compare(o.value, "==", expect).Test(o.value == expect)
}

// Contains asserts that the string contains the given substring.
func (o OnString) Contains(substr string) bool {
	return o.Compare(o.value, "contains", substr).Test(strings.Contains(o.value, substr))
}

// OnBytes is the result of calling ThatBytes on an Assertion.
type OnBytes struct {
	*Assertion
	value []byte
}

// ThatBytes returns an OnBytes for the specified byte slice.
func (a *Assertion) ThatBytes(value []byte) OnBytes {
	return OnBytes{Assertion: a, value: value}
}

// Equals asserts that the byte slice matches the expected bytes exactly.
func (o OnBytes) Equals(expect []byte) bool {
	return o.Compare(o.value, "==", expect).Test(bytes.Equal(o.value, expect))
}

// HasPrefix asserts that the byte slice begins with the expected bytes.
func (o OnBytes) HasPrefix(expect []byte) bool {
	return o.Compare(o.value, "starts with", expect).Test(bytes.HasPrefix(o.value, expect))
}
