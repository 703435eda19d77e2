package packet

import "fmt"

// Type is the 4-bit TYPE field of the packet header.
type Type uint8

// Packet types on an ACL/SCO logical transport.
const (
	NULL Type = iota
	POLL
	FHS
	DM1
	DH1
	HV1
	HV2
	HV3 // EV3 on eSCO
	DV
	AUX1
	DM3
	DH3
	EV4
	EV5
	DM5
	DH5
)

var typeInfo = [16]struct {
	name  string
	slots int
}{
	NULL: {"NULL", 1},
	POLL: {"POLL", 1},
	FHS:  {"FHS", 1},
	DM1:  {"DM1", 1},
	DH1:  {"DH1", 1},
	HV1:  {"HV1", 1},
	HV2:  {"HV2", 1},
	HV3:  {"HV3/EV3", 1},
	DV:   {"DV", 1},
	AUX1: {"AUX1", 1},
	DM3:  {"DM3", 3},
	DH3:  {"DH3", 3},
	EV4:  {"EV4", 3},
	EV5:  {"EV5", 3},
	DM5:  {"DM5", 5},
	DH5:  {"DH5", 5},
}

func (t Type) String() string {
	if int(t) < len(typeInfo) {
		return typeInfo[t].name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Slots returns the number of slots a packet of this type occupies.
func (t Type) Slots() int {
	if int(t) < len(typeInfo) {
		return typeInfo[t].slots
	}
	return 0
}
