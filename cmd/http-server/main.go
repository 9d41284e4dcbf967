// Command http-server serves a directory over HTTP/1.1: static files,
// directory listings, byte-range requests, and a handful of built-in
// demo routes wired in below the same way a caller of pkg/router
// would wire its own.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/saulvaldelvira/http-server/pkg/config"
	"github.com/saulvaldelvira/http-server/pkg/fsutil"
	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/logging"
	"github.com/saulvaldelvira/http-server/pkg/router"
	"github.com/saulvaldelvira/http-server/pkg/server"
)

const license = `http-server is distributed under the terms of the MIT license.
See the LICENSE file for details.`

func main() {
	conf, err := config.ParseServerArgs(os.Args[1:])
	if err != nil {
		if help, ok := err.(*config.ErrHelpRequested); ok {
			if help.License {
				fmt.Println(license)
			} else {
				fmt.Println(config.ServerHelpText)
			}
			return
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	if conf.LogFile != "" {
		f, err := os.OpenFile(conf.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR: opening log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.SetOutput(f)
	}
	logging.SetLevel(conf.LogLevel)

	rt := router.New()
	registerDemoRoutes(rt)
	fsutil.RegisterDefaults(rt)

	srv, err := server.New(conf, rt)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

// registerDemoRoutes mirrors the handful of example routes the
// original binary wired in ahead of its static file handlers: a
// query-param echo, a name-greeting endpoint, and a redirect.
func registerDemoRoutes(rt *router.Router) {
	rt.Get(router.Literal("/params"), func(req *httpmsg.Request) error {
		var s string
		for k, v := range req.Params() {
			s += fmt.Sprintf("%s = %s\n", k, v)
		}
		return req.RespondStr(s)
	})

	rt.Get(router.Literal("/hello"), func(req *httpmsg.Request) error {
		name, ok := req.Param("name")
		if !ok {
			name = "friend"
		}
		return req.RespondStr(fmt.Sprintf("Hello %s!", name))
	})

	rt.Get(router.Literal("/redirect"), fsutil.Redirect("/hello"))
}
