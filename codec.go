// Package btbb decodes Bluetooth BR/EDR baseband packets from a
// demodulated bit stream, one bit per byte in transmission order.
//
// The stages live in their own packages: accesscode, whiten, fec, crc and
// packet. Codec ties them together for one device address.
package btbb

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rigado/btbb/accesscode"
	"github.com/rigado/btbb/fec"
	"github.com/rigado/btbb/packet"
)

// Codec scans a bit stream for one LAP and decodes what follows. It holds
// no per-stream state and may be shared between goroutines.
type Codec struct {
	lap         uint32
	uap         uint8
	maxACErrors int

	matcher *accesscode.Matcher
	logger  Logger
}

// NewCodec returns a codec for lap.
func NewCodec(lap uint32, opts ...Option) (*Codec, error) {
	c := &Codec{lap: lap & accesscode.LAPMask}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "codec option")
		}
	}

	if c.logger == nil {
		c.logger = GetLogger()
	}
	c.logger = c.logger.ChildLogger(map[string]interface{}{"lap": fmt.Sprintf("%06x", c.lap)})
	c.matcher = accesscode.NewMatcher(c.lap)
	return c, nil
}

// LAP returns the LAP the codec scans for.
func (c *Codec) LAP() uint32 { return c.lap }

// UAP returns the UAP used for the HEC and CRC.
func (c *Codec) UAP() uint8 { return c.uap }

// AccessCode returns the access code for the codec's LAP.
func (c *Codec) AccessCode() accesscode.Code { return c.matcher.Code() }

// Scan returns the offset of the next access code at or after from.
func (c *Codec) Scan(stream []byte, from int) (int, bool) {
	off := c.matcher.Find(stream, from, c.maxACErrors)
	if off < 0 {
		return 0, false
	}
	if c.maxACErrors > 0 {
		c.logger.Debugf("access code at %d, %d bit errors", off, c.matcher.Distance(stream[off:]))
	} else {
		c.logger.Debugf("access code at %d", off)
	}
	return off, true
}

// Header decodes the packet header following the access code at offset.
func (c *Codec) Header(stream []byte, offset int, clock uint32) (packet.Header, error) {
	start := offset + accesscode.Len
	if offset < 0 || start > len(stream) {
		return packet.Header{}, errors.Wrapf(packet.ErrShortInput, "header at %d", start)
	}

	h, err := packet.DecodeHeader(stream[start:], clock, c.uap)
	if err != nil {
		c.logger.Debugf("header at %d clock %d: %v", start, clock, err)
		return h, err
	}
	c.logger.Debugf("header at %d: lt_addr %d type %s", start, h.LTAddr, h.Type)
	return h, nil
}

// Payload decodes n payload bits, CRC included, following the header of
// the packet whose access code is at offset. The CRC is stripped.
func (c *Codec) Payload(stream []byte, offset int, clock uint32, scheme fec.Scheme, n int) ([]byte, error) {
	start := offset + accesscode.Len + packet.HeaderAirLen
	if offset < 0 || start > len(stream) {
		return nil, errors.Wrapf(packet.ErrShortInput, "payload at %d", start)
	}

	p, err := packet.DecodePayload(stream[start:], clock, scheme, n, c.uap)
	if err != nil {
		if errors.Cause(err) == fec.ErrUncorrectable {
			c.logger.Debugf("payload at %d: dropping uncorrectable packet", start)
		} else {
			c.logger.Debugf("payload at %d: %v", start, err)
		}
		return nil, err
	}
	return p, nil
}
