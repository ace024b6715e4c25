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

package saphir

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"rivaas.dev/saphir/body"
	"rivaas.dev/saphir/opid"
	"rivaas.dev/saphir/router"
)

// Server drives requests through a Router and MiddlewareChain: it is the
// PipelineDriver described by the framework this package implements.
// Each accepted connection's requests are stamped with a monotonically
// distinguishable operation id, bounded by a request timeout and a body
// size limit, and tracked by an in-flight counter so Shutdown can drain
// gracefully.
type Server struct {
	cfg        *Config
	router     *router.Router
	middleware *router.MiddlewareChain
	opGen      *opid.Generator

	httpServer *http.Server
	inFlight   atomic.Int64
	closing    atomic.Bool
}

// New builds a Server around r and mw using cfg. A nil mw is treated as an
// empty chain.
func New(cfg *Config, r *router.Router, mw *router.MiddlewareChain) *Server {
	if mw == nil {
		mw = router.NewMiddlewareChain()
	}
	s := &Server{
		cfg:        cfg,
		router:     r,
		middleware: mw,
		opGen:      opid.NewGenerator(cfg.serverEpoch),
	}

	handler := http.Handler(s)
	if cfg.enableH2C {
		h2s := &http2.Server{}
		handler = h2c.NewHandler(handler, h2s)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.serverTimeouts.readHeader,
		ReadTimeout:       cfg.serverTimeouts.read,
		WriteTimeout:      cfg.serverTimeouts.write,
		IdleTimeout:       cfg.serverTimeouts.idle,
		TLSConfig:         cfg.tlsConfig,
		ErrorLog:          nil,
	}
	return s
}

// Run starts serving and blocks until the listener fails or Shutdown is
// called, in which case it returns ErrServerClosed.
func (s *Server) Run() error {
	var err error
	if s.cfg.tlsConfig != nil {
		err = s.httpServer.ListenAndServeTLS("", "")
	} else {
		err = s.httpServer.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return ErrServerClosed
	}
	return err
}

// ServeConnection serves a single already-accepted connection, bypassing
// net/http.Server's listener loop. Useful for protocols that hand off
// accepted sockets (e.g. behind a custom listener or test harness).
func (s *Server) ServeConnection(conn net.Conn) error {
	oneShot := &singleConnListener{conn: conn}
	err := s.httpServer.Serve(oneShot)
	if errors.Is(err, io.EOF) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting new connections and waits up to the configured
// drain grace period for in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)
	deadline := time.Now().Add(s.cfg.drainGrace)
	shutdownCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrDrainTimeout
		}
		return err
	}

	for s.inFlight.Load() > 0 {
		if time.Now().After(deadline) {
			return ErrDrainTimeout
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// InFlight reports the number of requests currently in the pipeline.
func (s *Server) InFlight() int64 { return s.inFlight.Load() }

// ServeHTTP implements http.Handler: it is the pipeline driver's entry
// point, stamping an operation id, bounding the request by timeout and
// body size, and translating the resulting Response (or error) to wire
// bytes.
func (s *Server) ServeHTTP(w http.ResponseWriter, httpReq *http.Request) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	start := time.Now()
	opID := s.opGen.Next().String()
	logger := s.cfg.logger
	if logger != nil {
		logger.Info("request started", slog.String("operation_id", opID), slog.String("path", httpReq.URL.Path))
	}

	ctx, cancel := context.WithTimeout(httpReq.Context(), s.cfg.requestTimeout)
	defer cancel()

	head := &router.RequestHead{
		Method:  httpReq.Method,
		URI:     httpReq.URL,
		Version: httpReq.Proto,
		Header:  httpReq.Header,
	}
	head.Set("operation_id", opID)

	b := body.New(httpReq.Body, httpReq.Header.Get("Content-Type"), s.cfg.maxBodyBytes)
	var peer net.Addr
	if tcpAddr, err := net.ResolveTCPAddr("tcp", httpReq.RemoteAddr); err == nil {
		peer = tcpAddr
	}
	req := router.NewRequest(head, b, peer)

	result := s.raceDispatch(ctx, req)

	s.writeResponse(w, result.resp, opID, ctx)

	elapsed := time.Since(start)
	if logger != nil {
		logger.Info("request completed", slog.String("operation_id", opID), slog.Int("status", result.status), slog.Duration("elapsed", elapsed))
	}
	s.cfg.recorder.RecordRequest(httpReq.Method, result.template, result.status, elapsed)
}

// dispatchResult is what a dispatch goroutine reports back over a channel,
// so the caller never touches memory the goroutine might still be writing.
type dispatchResult struct {
	resp     *router.Response
	template string
	status   int
}

// raceDispatch runs the middleware/router/guard/handler chain on its own
// goroutine and races its completion against ctx's deadline. A handler
// that never checks ctx.Done() itself (the common case) would otherwise
// block the calling goroutine for its full duration; racing here is what
// actually turns the configured request timeout into a bounded-latency
// 408 instead of a response that merely arrives stamped with one late.
// The dispatch goroutine is not killed on timeout — Go has no mechanism
// to preempt it — it keeps running in the background, reporting into a
// buffered channel the timeout branch never reads from again, so the
// abandoned goroutine's eventual write can't race with anything.
func (s *Server) raceDispatch(ctx context.Context, req *router.Request) dispatchResult {
	done := make(chan dispatchResult, 1)
	go func() {
		template := ""
		status := http.StatusNotFound
		resp := s.dispatchWithMiddleware(ctx, req, &template, &status)
		done <- dispatchResult{resp: resp, template: template, status: status}
	}()

	select {
	case r := <-done:
		return r
	case <-ctx.Done():
		return dispatchResult{resp: &router.Response{Status: http.StatusRequestTimeout}, status: http.StatusRequestTimeout}
	}
}

func (s *Server) dispatchWithMiddleware(ctx context.Context, req *router.Request, template *string, status *int) *router.Response {
	terminal := func(ctx context.Context, req *router.Request) *router.Response {
		res, err := s.router.Resolve(req)
		if err != nil {
			*status = statusForRoutingError(err)
			if errors.Is(err, router.ErrMethodNotAllowed) {
				allowed := s.router.AllowedMethods(req.Path())
				resp, _ := router.NewResponseBuilder().
					Status(http.StatusMethodNotAllowed).
					Header("Allow", strings.Join(allowed, ", ")).
					Build()
				return resp
			}
			resp, _ := router.NewResponseBuilder().Status(http.StatusNotFound).Build()
			return resp
		}
		*template = res.Entry.Template()
		opID, _ := router.Extension[string](req.Head, "operation_id")
		hctx := router.NewHttpContext(opID, s.router, req)
		resp := router.SafeDispatch(ctx, hctx, res, s.cfg.logger)
		*status = resp.Status
		return resp
	}
	return s.middleware.Run(ctx, req, terminal)
}

func statusForRoutingError(err error) int {
	if errors.Is(err, router.ErrMethodNotAllowed) {
		return http.StatusMethodNotAllowed
	}
	return http.StatusNotFound
}

func (s *Server) writeResponse(w http.ResponseWriter, resp *router.Response, opID string, ctx context.Context) {
	if resp == nil {
		resp = &router.Response{Status: http.StatusInternalServerError}
	}
	header := w.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	resp.Cookie.WriteSetCookieHeaders(header)
	header.Set("Server", s.cfg.serverName)
	header.Set("X-Operation-Id", opID)
	if resp.Status == http.StatusRequestEntityTooLarge {
		header.Set("Connection", "close")
	}

	if ctx.Err() != nil {
		w.WriteHeader(http.StatusRequestTimeout)
		return
	}

	w.WriteHeader(resp.Status)
	if resp.Body != nil {
		_, _ = io.Copy(w, resp.Body)
	}
}

// singleConnListener adapts one net.Conn into a net.Listener that yields
// it exactly once, then reports io.EOF so the owning http.Server.Serve
// loop exits instead of spinning.
type singleConnListener struct {
	conn net.Conn
	used bool
}

func (l *singleConnListener) Accept() (net.Conn, error) {
	if l.used {
		return nil, io.EOF
	}
	l.used = true
	return l.conn, nil
}

func (l *singleConnListener) Close() error { return l.conn.Close() }

func (l *singleConnListener) Addr() net.Addr { return l.conn.LocalAddr() }
