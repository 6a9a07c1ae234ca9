package common

// WipeByteArray overwrites b with zeros. Passwords read from the terminal
// are wiped once the auth request has been built.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
