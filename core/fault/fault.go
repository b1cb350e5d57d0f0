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

// Package fault provides a simple error type for constant error values.
//
// Errors declared as fault.Const can be compared against directly, can be
// used in switch statements, and impose no allocation at declaration site:
//
//	const ErrTooBig = fault.Const("value too big")
package fault

// Const is the type for constant error values.
type Const string

// Error implements error, returning the string value of the const.
func (e Const) Error() string { return string(e) }
