package btbb

import (
	"github.com/pkg/errors"

	"github.com/rigado/btbb/accesscode"
)

// An Option is a configuration function, which configures the codec.
type Option func(*Codec) error

// OptLogger sets the logger; the package logger is used otherwise.
func OptLogger(l Logger) Option {
	return func(c *Codec) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.logger = l
		return nil
	}
}

// OptUAP sets the UAP used to check the HEC and CRC.
func OptUAP(uap uint8) Option {
	return func(c *Codec) error {
		c.uap = uap
		return nil
	}
}

// OptAddr sets both LAP and UAP from a device address.
func OptAddr(a Addr) Option {
	return func(c *Codec) error {
		c.lap = a.LAP & accesscode.LAPMask
		c.uap = a.UAP
		return nil
	}
}

// OptMaxACErrors accepts access codes with up to n bit errors. The default
// of 0 accepts exact matches only.
func OptMaxACErrors(n int) Option {
	return func(c *Codec) error {
		if n < 0 || n >= accesscode.Len {
			return errors.Errorf("access code tolerance %d out of range", n)
		}
		c.maxACErrors = n
		return nil
	}
}
