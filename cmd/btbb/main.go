package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rigado/btbb"
	"github.com/rigado/btbb/bits"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "btbb:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "btbb"
	app.Usage = "decode Bluetooth baseband bit streams"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "trace, debug, info, warn or error"},
		cli.StringFlag{Name: "log-file", Usage: "write logs to a rotated file instead of stderr"},
		cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
	}
	app.Before = setupLogging

	app.Commands = []cli.Command{
		accessCodeCommand,
		scanCommand,
		headerCommand,
		unwhitenCommand,
		crcCommand,
		sightingsCommand,
	}
	return app
}

func setupLogging(c *cli.Context) error {
	lvl, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if fn := c.String("log-file"); fn != "" {
		out = &lumberjack.Logger{
			Filename:   fn,
			MaxSize:    10,
			MaxBackups: 3,
			Compress:   true,
		}
	}
	btbb.SetLogger(btbb.NewLogger(out, lvl))
	return nil
}

// readBits loads the bit file named by the first argument, "-" for stdin.
func readBits(c *cli.Context) ([]byte, error) {
	fn := c.Args().First()
	if fn == "" {
		return nil, errors.New("missing bit file argument")
	}

	var in []byte
	var err error
	if fn == "-" {
		in, err = io.ReadAll(os.Stdin)
	} else {
		in, err = os.ReadFile(fn)
	}
	if err != nil {
		return nil, err
	}

	b, err := bits.Parse(in)
	if err != nil {
		return nil, errors.Wrap(err, fn)
	}
	return b, nil
}

func parseHex(s string, size int) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, size)
	if err != nil {
		return 0, errors.Wrapf(err, "bad hex value %q", s)
	}
	return v, nil
}

// parseDevice reads --addr or --lap/--uap.
func parseDevice(c *cli.Context) (btbb.Addr, error) {
	if s := c.String("addr"); s != "" {
		return btbb.ParseAddr(s)
	}

	lap, err := parseHex(c.String("lap"), 24)
	if err != nil {
		return btbb.Addr{}, errors.Wrap(err, "lap")
	}
	a := btbb.Addr{LAP: uint32(lap)}

	if s := c.String("uap"); s != "" {
		uap, err := parseHex(s, 8)
		if err != nil {
			return btbb.Addr{}, errors.Wrap(err, "uap")
		}
		a.UAP = uint8(uap)
	}
	return a, nil
}

// emit prints v as JSON when --json is set and text otherwise.
func emit(c *cli.Context, v interface{}, text string) error {
	if c.GlobalBool("json") {
		return jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout).Encode(v)
	}
	_, err := fmt.Println(text)
	return err
}
