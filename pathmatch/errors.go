// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathmatch

import "fmt"

// InvalidTemplateError reports why a path template failed to compile.
type InvalidTemplateError struct {
	Template string
	Reason   string
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("pathmatch: invalid template %q: %s", e.Template, e.Reason)
}

// newInvalidTemplate builds an InvalidTemplateError for the given template and reason.
func newInvalidTemplate(template, reason string) *InvalidTemplateError {
	return &InvalidTemplateError{Template: template, Reason: reason}
}
