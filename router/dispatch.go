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

package router

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// SafeDispatch wraps Router.Dispatch with panic recovery at the handler
// boundary: a panicking guard or handler yields a 500 response carrying
// the context's operation id, and is logged at Error level with a stack
// trace rather than crashing the request's goroutine.
func SafeDispatch(ctx context.Context, hctx *HttpContext, res *Resolution, logger *slog.Logger) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("handler panic recovered",
					slog.String("operation_id", hctx.OperationID),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
			resp = &Response{
				Status: http.StatusInternalServerError,
				Header: http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
			}
		}
	}()
	return hctx.Router.Dispatch(ctx, res, hctx.Request)
}
