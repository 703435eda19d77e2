// Package lfsr computes the redundancy of a systematic cyclic code by
// polynomial division over GF(2).
package lfsr

// Codeword returns the length-k redundancy bits of data under the
// generator g. data holds k bits, g holds at least length-k coefficients
// with g[j] the coefficient of D^j. The result is the remainder of
// D^(length-k)*data(D) divided by g(D).
//
// Data bits are fed from index k-1 down to 0.
func Codeword(data []byte, length, k int, g []byte) []byte {
	n := length - k
	cw := make([]byte, n)

	for i := k - 1; i >= 0; i-- {
		feedback := (data[i] ^ cw[n-1]) & 0x01
		for j := n - 1; j > 0; j-- {
			if g[j] != 0 {
				cw[j] = cw[j-1] ^ feedback
			} else {
				cw[j] = cw[j-1]
			}
		}
		cw[0] = g[0] & feedback
	}
	return cw
}
