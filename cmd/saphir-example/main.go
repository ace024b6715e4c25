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

// Command saphir-example wires a Router, a MiddlewareChain, a GuardChain,
// and a handful of demo routes into a runnable server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rivaas.dev/saphir"
	"rivaas.dev/saphir/body"
	"rivaas.dev/saphir/middleware"
	"rivaas.dev/saphir/router"
)

type user struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var users = map[string]user{
	"1": {ID: "1", Name: "ada"},
	"2": {ID: "2", Name: "grace"},
}

func authGuard(ctx context.Context, req *router.Request) (*router.Request, router.Responder) {
	if req.Head.Header.Get("Authorization") == "" {
		return req, router.ResponderFunc(func(b *router.ResponseBuilder) *router.ResponseBuilder {
			return b.Status(http.StatusUnauthorized)
		})
	}
	return req, nil
}

func getUser(ctx context.Context, req *router.Request) any {
	id, _ := req.Param("id")
	u, ok := users[id]
	if !ok {
		return router.None()
	}
	return router.Some(router.JSON(u))
}

func listUsers(ctx context.Context, req *router.Request) any {
	out := make([]user, 0, len(users))
	for _, u := range users {
		out = append(out, u)
	}
	return router.JSON(out)
}

func createUser(ctx context.Context, req *router.Request) any {
	u, err := body.TakeAs(ctx, req.Body, body.JSON[user])
	if err != nil {
		return router.Err(err)
	}
	users[u.ID] = u
	return router.Status(http.StatusCreated, "created")
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	r := router.New()
	root := router.NewGroup(r)

	root.GET("/users", listUsers)

	api := root.Group("/api/v1", authGuard)
	api.GET("/users/{id}", getUser)
	api.POST("/users", createUser)

	mw := router.NewMiddlewareChain()
	mw.Use(middleware.RequestID())
	mw.Use(middleware.Tracing(middleware.WithServiceName("saphir-example")))
	mw.Use(middleware.Logger(middleware.WithLogger(logger)))
	mw.Use(middleware.Recovery(middleware.WithRecoveryLogger(logger)))
	mw.Use(middleware.CORS())

	cfg := saphir.NewConfig(
		saphir.WithAddr(":8080"),
		saphir.WithLogger(logger),
		saphir.WithRequestTimeout(10*time.Second),
	)
	srv := saphir.New(cfg, r, mw)

	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, saphir.ErrServerClosed) {
			logger.Error("server exited", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
