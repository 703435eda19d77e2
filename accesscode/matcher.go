package accesscode

// Matcher correlates windows of a bit stream against one LAP's access code.
// The expanded code is computed once; a Matcher is safe for concurrent use.
type Matcher struct {
	lap  uint32
	code Code
	bits []byte
}

// NewMatcher returns a Matcher for lap.
func NewMatcher(lap uint32) *Matcher {
	code := Generate(lap)
	return &Matcher{
		lap:  lap & LAPMask,
		code: code,
		bits: code.Bits(),
	}
}

// LAP returns the LAP the matcher was built for.
func (m *Matcher) LAP() uint32 { return m.lap }

// Code returns the access code.
func (m *Matcher) Code() Code { return m.code }

// Match reports an exact match of the first Len bits of window.
func (m *Matcher) Match(window []byte) bool {
	if len(window) < Len {
		return false
	}
	for i, b := range m.bits {
		if window[i] != b {
			return false
		}
	}
	return true
}

// Distance returns the number of positions in which the first Len bits of
// window differ from the access code, or -1 if window is too short.
func (m *Matcher) Distance(window []byte) int {
	if len(window) < Len {
		return -1
	}
	d := 0
	for i, b := range m.bits {
		if window[i] != b {
			d++
		}
	}
	return d
}

// MatchWithin reports whether window is within maxErrors bit errors of the
// access code. With maxErrors of 0 it is the same as Match.
func (m *Matcher) MatchWithin(window []byte, maxErrors int) bool {
	if maxErrors <= 0 {
		return m.Match(window)
	}
	d := m.Distance(window)
	return d >= 0 && d <= maxErrors
}

// Find returns the offset of the first window at or after from that is
// within maxErrors of the access code, or -1.
func (m *Matcher) Find(stream []byte, from, maxErrors int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i+Len <= len(stream); i++ {
		if m.MatchWithin(stream[i:], maxErrors) {
			return i
		}
	}
	return -1
}

// MatchesWithin is the tolerant counterpart of Matches.
func MatchesWithin(window []byte, lap uint32, maxErrors int) bool {
	return NewMatcher(lap).MatchWithin(window, maxErrors)
}

// Find scans stream for the access code of lap starting at from.
func Find(stream []byte, lap uint32, from, maxErrors int) int {
	return NewMatcher(lap).Find(stream, from, maxErrors)
}
