package dcrypto

// Wipe overwrites every byte of b with zero. Every intermediate buffer that
// ever held key material (a DER encoding buffer, a base64 intermediate, a
// decoded PEM body) must be passed through Wipe before it is released, per
// spec.md §4.6's secret-hygiene requirement and §5's "secret-carrying
// handles zero their buffers before release".
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeAll wipes every buffer given, in order. Safe to call with nil slices.
func WipeAll(bufs ...[]byte) {
	for _, b := range bufs {
		Wipe(b)
	}
}
