package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/rigado/btbb"
	"github.com/rigado/btbb/accesscode"
	"github.com/rigado/btbb/bits"
	"github.com/rigado/btbb/cache"
	"github.com/rigado/btbb/crc"
	"github.com/rigado/btbb/packet"
	"github.com/rigado/btbb/whiten"
)

var deviceFlags = []cli.Flag{
	cli.StringFlag{Name: "lap, l", Value: "9e8b33", Usage: "lower address part, hex"},
	cli.StringFlag{Name: "uap, u", Usage: "upper address part, hex"},
	cli.StringFlag{Name: "addr, a", Usage: "full BD_ADDR, overrides --lap and --uap"},
}

var accessCodeCommand = cli.Command{
	Name:    "accesscode",
	Aliases: []string{"ac"},
	Usage:   "print the access code for a LAP",
	Flags:   deviceFlags,
	Action: func(c *cli.Context) error {
		a, err := parseDevice(c)
		if err != nil {
			return err
		}

		ac := accesscode.Generate(a.LAP)
		out := struct {
			LAP      string `json:"lap"`
			Code     string `json:"code"`
			SyncWord string `json:"sync_word"`
			Bits     string `json:"bits"`
		}{
			LAP:      fmt.Sprintf("%06x", a.LAP),
			Code:     fmt.Sprintf("%x", ac[:]),
			SyncWord: fmt.Sprintf("%016x", ac.SyncWord()),
			Bits:     bits.Format(ac.Bits()),
		}
		return emit(c, out, fmt.Sprintf("LAP:%s code:%s sync:%s\n%s", out.LAP, out.Code, out.SyncWord, out.Bits))
	},
}

type hit struct {
	Offset int    `json:"offset"`
	LAP    string `json:"lap"`
	Type   string `json:"type,omitempty"`
	LTAddr *uint8 `json:"lt_addr,omitempty"`
	Error  string `json:"error,omitempty"`
}

var scanCommand = cli.Command{
	Name:      "scan",
	Usage:     "find access codes in a bit file and decode their headers",
	ArgsUsage: "<bit file>",
	Flags: append([]cli.Flag{
		cli.UintFlag{Name: "clock, c", Usage: "clock bits 1-6 for unwhitening"},
		cli.IntFlag{Name: "max-errors, e", Usage: "access code bit errors tolerated"},
		cli.BoolFlag{Name: "header", Usage: "decode the header after each access code"},
		cli.StringFlag{Name: "cache", Usage: "record sightings in this JSON file"},
	}, deviceFlags...),
	Action: func(c *cli.Context) error {
		a, err := parseDevice(c)
		if err != nil {
			return err
		}
		stream, err := readBits(c)
		if err != nil {
			return err
		}

		codec, err := btbb.NewCodec(a.LAP, btbb.OptAddr(a), btbb.OptMaxACErrors(c.Int("max-errors")))
		if err != nil {
			return err
		}

		s := btbb.Sighting{LAP: codec.LAP()}
		for off, ok := codec.Scan(stream, 0); ok; off, ok = codec.Scan(stream, off+1) {
			s.Hits++
			h := hit{Offset: off, LAP: fmt.Sprintf("%06x", codec.LAP())}
			line := fmt.Sprintf("%d LAP:%s", off, h.LAP)

			if c.Bool("header") {
				hdr, err := codec.Header(stream, off, uint32(c.Uint("clock")))
				if err != nil {
					h.Error = err.Error()
					line += " header: " + h.Error
				} else {
					s.UAP = codec.UAP()
					s.Headers++
					h.Type, h.LTAddr = hdr.Type.String(), &hdr.LTAddr
					line += fmt.Sprintf(" LT_ADDR:%d Type:%s Slots:%d", hdr.LTAddr, hdr.Type, hdr.Type.Slots())
				}
			}
			if err := emit(c, h, line); err != nil {
				return err
			}
		}

		if fn := c.String("cache"); fn != "" && s.Hits > 0 {
			if err := cache.New(fn).Store(s); err != nil {
				return errors.Wrap(err, "cache")
			}
		}
		return nil
	},
}

var headerCommand = cli.Command{
	Name:      "header",
	Usage:     "decode a packet header from 54 air bits",
	ArgsUsage: "<bit file>",
	Flags: []cli.Flag{
		cli.UintFlag{Name: "clock, c", Usage: "clock bits 1-6"},
		cli.StringFlag{Name: "uap, u", Value: "00", Usage: "upper address part, hex"},
	},
	Action: func(c *cli.Context) error {
		stream, err := readBits(c)
		if err != nil {
			return err
		}
		uap, err := parseHex(c.String("uap"), 8)
		if err != nil {
			return err
		}

		h, err := packet.DecodeHeader(stream, uint32(c.Uint("clock")), uint8(uap))
		if err != nil {
			return err
		}
		return emit(c, h, fmt.Sprintf("LT_ADDR:%d Type:%s FLOW:%t ARQN:%t SEQN:%t HEC:%02x",
			h.LTAddr, h.Type, h.Flow, h.ARQN, h.SEQN, h.HEC))
	},
}

var unwhitenCommand = cli.Command{
	Name:      "unwhiten",
	Usage:     "remove data whitening from a bit file",
	ArgsUsage: "<bit file>",
	Flags: []cli.Flag{
		cli.UintFlag{Name: "clock, c", Usage: "clock bits 1-6"},
		cli.IntFlag{Name: "skip, s", Usage: "bits into the whitening word to start at"},
	},
	Action: func(c *cli.Context) error {
		stream, err := readBits(c)
		if err != nil {
			return err
		}
		out := bits.Format(whiten.Unwhiten(stream, uint32(c.Uint("clock")), c.Int("skip")))
		return emit(c, map[string]string{"bits": out}, out)
	},
}

var crcCommand = cli.Command{
	Name:      "crc",
	Usage:     "compute the CRC and HEC of a bit file",
	ArgsUsage: "<bit file>",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "uap, u", Value: "00", Usage: "upper address part, hex"},
	},
	Action: func(c *cli.Context) error {
		stream, err := readBits(c)
		if err != nil {
			return err
		}
		uap, err := parseHex(c.String("uap"), 8)
		if err != nil {
			return err
		}

		out := struct {
			CRC   string `json:"crc"`
			HEC   string `json:"hec"`
			Valid bool   `json:"crc_valid"`
		}{
			CRC:   fmt.Sprintf("%04x", crc.CRC16(stream, uint8(uap))),
			HEC:   fmt.Sprintf("%02x", crc.HEC(stream, uint8(uap))),
			Valid: crc.CheckCRC16(stream, uint8(uap)),
		}
		return emit(c, out, fmt.Sprintf("CRC:%s HEC:%s trailing CRC valid:%t", out.CRC, out.HEC, out.Valid))
	},
}

var sightingsCommand = cli.Command{
	Name:      "sightings",
	Usage:     "list the sightings recorded by scan --cache",
	ArgsUsage: "<cache file>",
	Action: func(c *cli.Context) error {
		fn := c.Args().First()
		if fn == "" {
			return errors.New("missing cache file argument")
		}

		all, err := cache.New(fn).All()
		if err != nil {
			return err
		}

		lines := make([]string, 0, len(all))
		for _, s := range all {
			lines = append(lines, fmt.Sprintf("LAP:%06x UAP:%02x hits:%d headers:%d", s.LAP, s.UAP, s.Hits, s.Headers))
		}
		return emit(c, all, strings.Join(lines, "\n"))
	},
}
