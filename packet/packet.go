// Package packet assembles the baseband codec stages into header and
// payload decoding. Receive order is FEC decode, unwhiten, then the
// HEC or CRC check.
package packet

import (
	"github.com/pkg/errors"

	"github.com/rigado/btbb/bits"
	"github.com/rigado/btbb/crc"
	"github.com/rigado/btbb/fec"
	"github.com/rigado/btbb/whiten"
)

const (
	// HeaderLen is the decoded header length: 10 bits of fields and the HEC.
	HeaderLen = 18

	// HeaderAirLen is the header length on air after rate 1/3 FEC.
	HeaderAirLen = 3 * HeaderLen
)

var (
	// ErrShortInput is returned when the stream ends before the field.
	ErrShortInput = errors.New("packet too short")

	// ErrHEC is returned when a decoded header fails its HEC.
	ErrHEC = errors.New("header error check failed")

	// ErrCRC is returned when a decoded payload fails its CRC.
	ErrCRC = errors.New("payload crc failed")
)

// Header is a decoded packet header.
type Header struct {
	LTAddr uint8
	Type   Type
	Flow   bool
	ARQN   bool
	SEQN   bool
	HEC    uint8
}

func flag(b byte) bool { return b != 0 }

func bit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// fields lays out the 10 header field bits in air order.
func (h Header) fields() []byte {
	f := make([]byte, 10)
	bits.HostToAir(uint32(h.LTAddr), f[0:], 3)
	bits.HostToAir(uint32(h.Type), f[3:], 4)
	f[7] = bit(h.Flow)
	f[8] = bit(h.ARQN)
	f[9] = bit(h.SEQN)
	return f
}

// DecodeHeader decodes the HeaderAirLen bits following an access code.
// clock supplies the whitening phase, uap seeds the HEC.
func DecodeHeader(air []byte, clock uint32, uap uint8) (Header, error) {
	if len(air) < HeaderAirLen {
		return Header{}, errors.Wrapf(ErrShortInput, "header: want %d bits, have %d", HeaderAirLen, len(air))
	}

	raw, err := fec.Decode13(air, HeaderLen)
	if err != nil {
		return Header{}, errors.Wrap(err, "header")
	}
	hdr := whiten.Unwhiten(raw, clock, 0)

	h := Header{
		LTAddr: bits.AirToHost8(hdr[0:], 3),
		Type:   Type(bits.AirToHost8(hdr[3:], 4)),
		Flow:   flag(hdr[7]),
		ARQN:   flag(hdr[8]),
		SEQN:   flag(hdr[9]),
	}
	for _, b := range hdr[10:HeaderLen] {
		h.HEC = h.HEC<<1 | b
	}

	if !crc.CheckHEC(hdr, uap) {
		return h, errors.Wrapf(ErrHEC, "uap 0x%02x hec 0x%02x", uap, h.HEC)
	}
	return h, nil
}

// EncodeHeader builds the HeaderAirLen air bits for h. The HEC field of h
// is ignored and recomputed from uap.
func EncodeHeader(h Header, clock uint32, uap uint8) []byte {
	hdr := crc.AppendHEC(h.fields(), uap)
	return fec.Encode13(whiten.Whiten(hdr, clock, 0))
}

// DecodePayload recovers n payload bits, the trailing crc.Len16 of which
// are the CRC, from air bits following the header. It returns the payload
// without the CRC.
func DecodePayload(air []byte, clock uint32, scheme fec.Scheme, n int, uap uint8) ([]byte, error) {
	if n < crc.Len16 {
		return nil, errors.Wrapf(ErrShortInput, "payload: %d bits cannot hold a crc", n)
	}

	raw, err := scheme.Decode(air, n)
	if err != nil {
		return nil, errors.Wrapf(err, "payload fec %s", scheme)
	}
	payload := whiten.Unwhiten(raw[:n], clock, HeaderLen)

	if !crc.CheckCRC16(payload, uap) {
		return nil, errors.Wrapf(ErrCRC, "uap 0x%02x", uap)
	}
	return payload[:n-crc.Len16], nil
}

// EncodePayload appends the CRC to payload, whitens and FEC encodes it.
func EncodePayload(payload []byte, clock uint32, scheme fec.Scheme, uap uint8) []byte {
	framed := crc.AppendCRC16(payload, uap)
	return scheme.Encode(whiten.Whiten(framed, clock, HeaderLen))
}
