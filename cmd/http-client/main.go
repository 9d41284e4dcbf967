// Command http-client sends a single HTTP/1.1 request and writes the
// response body to stdout, a named file, or a file derived from the
// request URL.
package main

import (
	"fmt"
	"os"

	"github.com/saulvaldelvira/http-server/pkg/client"
	"github.com/saulvaldelvira/http-server/pkg/config"
)

const license = `http-client is distributed under the terms of the MIT license.
See the LICENSE file for details.`

func main() {
	conf, err := config.ParseClientArgs(os.Args[1:])
	if err != nil {
		if help, ok := err.(*config.ErrHelpRequested); ok {
			if help.License {
				fmt.Println(license)
			} else {
				fmt.Println(config.ClientHelpText)
			}
			return
		}
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	resp, err := client.Do(conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	defer resp.Stream().Close()

	out, err := client.OpenOutput(conf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
	if out != os.Stdout {
		defer out.Close()
	}

	if _, err := client.WriteBody(resp, out); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
