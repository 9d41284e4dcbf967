// Package client implements the request/response round trip the
// http-client binary drives: dial the configured host, send one
// request built from a ClientConfig, and hand back the parsed
// response for the caller to write out.
package client

import (
	"fmt"
	"net"

	"github.com/saulvaldelvira/http-server/pkg/config"
	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/stream"
)

// Do dials conf.Host:conf.Port, sends the request it describes, and
// returns the parsed response. The caller is responsible for draining
// and closing resp's underlying stream via resp.Stream().Close() (the
// transport is exposed on the request's stream) once the body has
// been read.
func Do(conf config.ClientConfig) (*httpmsg.Response, error) {
	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("client: connecting to %s: %w", addr, err)
	}

	st := stream.NewTCP(conn)

	req, err := httpmsg.NewRequestBuilder().
		Method(conf.Method).
		URL(conf.URL).
		Version(1.1).
		Header("Host", conf.Host).
		Header("Accept", "*/*").
		Header("User-Agent", conf.UserAgent).
		Stream(st).
		Build()
	if err != nil {
		st.Close()
		return nil, err
	}

	resp, err := req.SendTo(st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("client: sending request: %w", err)
	}
	return resp, nil
}
