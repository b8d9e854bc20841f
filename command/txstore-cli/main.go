// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/txstored/account"
	"github.com/bitmark-inc/txstored/chain"
)

type metadata struct {
	connect string
	key     *account.PrivateKey
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "txstore-cli"
	app.Usage = "store, renew and prove transactions on a txstored node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Local,
			Usage: " connect to `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "127.0.0.1:2130",
			Usage: " txstored host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:   "seed, s",
			Value:  "",
			Usage:  " base58 private key `SEED` used to sign requests",
			EnvVar: "TXSTORE_SEED",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "keygen",
			Usage:  "generate a new seed and its account",
			Action: runKeygen,
		},
		{
			Name:      "store",
			Usage:     "store the contents of a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` of data to store",
				},
				cli.Uint64Flag{
					Name:  "authorization, a",
					Value: 0,
					Usage: " pre-authorized store using authorization `ID`",
				},
			},
			Action: runStore,
		},
		{
			Name:      "renew",
			Usage:     "extend the retention of a stored transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "ref, r",
					Value: "",
					Usage: "*record reference `BLOCK:INDEX`",
				},
			},
			Action: runRenew,
		},
		{
			Name:      "get",
			Usage:     "display a stored transaction record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "ref, r",
					Value: "",
					Usage: "*record reference `BLOCK:INDEX`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "authorize",
			Usage:     "grant a storage authorization (authorizer only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "count, n",
					Value: 1,
					Usage: " number of transactions `COUNT`",
				},
				cli.UintFlag{
					Name:  "bytes, b",
					Value: 0,
					Usage: "*total payload `BYTES`",
				},
				cli.Uint64Flag{
					Name:  "expiry, e",
					Value: 0,
					Usage: "*block number the authorization expires at `BLOCK`",
				},
			},
			Action: runAuthorize,
		},
		{
			Name:      "authorization",
			Usage:     "display an authorization entry",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, i",
					Value: 0,
					Usage: "*authorization `ID`",
				},
			},
			Action: runAuthorization,
		},
		{
			Name:   "obligation",
			Usage:  "display the proof obligation of the open block",
			Action: runObligation,
		},
		{
			Name:      "prove",
			Usage:     "answer the current proof obligation from a local copy of the payload",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` holding the challenged payload",
				},
			},
			Action: runProve,
		},
		{
			Name:   "info",
			Usage:  "display txstored status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display txstore-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		testnet := false
		switch c.GlobalString("network") {
		case chain.Live, "bitmark":
		case chain.Testing, "test", chain.Local:
			testnet = true
		default:
			return ErrInvalidNetwork
		}

		m := &metadata{
			connect: c.GlobalString("connect"),
			testnet: testnet,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		if seed := c.GlobalString("seed"); "" != seed {
			key, err := account.PrivateKeyFromBase58Seed(seed)
			if nil != err {
				return err
			}
			if key.IsTesting() != testnet {
				return ErrWrongNetworkForSeed
			}
			m.key = key
		}

		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	return app
}
