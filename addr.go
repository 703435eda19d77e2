package btbb

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Addr is a BD_ADDR split into its address parts. The access code is
// derived from the LAP, the HEC and CRC are seeded with the UAP.
type Addr struct {
	NAP uint16
	UAP uint8
	LAP uint32
}

// ParseAddr parses "00:11:22:33:44:55", most significant byte first.
func ParseAddr(s string) (Addr, error) {
	hexStr := strings.Replace(strings.TrimSpace(s), ":", "", -1)

	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return Addr{}, errors.Wrapf(err, "address %q", s)
	}
	if len(b) != 6 {
		return Addr{}, errors.Errorf("address %q: want 6 bytes, have %d", s, len(b))
	}

	return Addr{
		NAP: uint16(b[0])<<8 | uint16(b[1]),
		UAP: b[2],
		LAP: uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5]),
	}, nil
}

func (a Addr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		byte(a.NAP>>8), byte(a.NAP), a.UAP, byte(a.LAP>>16), byte(a.LAP>>8), byte(a.LAP))
}

// Bytes returns the six address bytes, most significant first.
func (a Addr) Bytes() []byte {
	return []byte{byte(a.NAP >> 8), byte(a.NAP), a.UAP, byte(a.LAP >> 16), byte(a.LAP >> 8), byte(a.LAP)}
}
