package prudp

import "crypto/rc4"

// defaultRC4Key is the key a fresh ClientConnection's ciphers start with,
// before any Syn has re-keyed them.
var defaultRC4Key = []byte{0x00}

// resetRC4Key is the key both ciphers are re-keyed to on a Syn-driven
// connection reset.
var resetRC4Key = []byte("CD&ML")

// CipherPair is the exclusively-owned pair of RC4 streams a ClientConnection
// uses: one for decrypting inbound Data payloads, one for encrypting
// outbound ones. RC4 is stateful, so the two directions must never share a
// single *rc4.Cipher, and neither may be touched by more than one goroutine
// at a time.
type CipherPair struct {
	decipher *rc4.Cipher
	cipher   *rc4.Cipher
}

// NewCipherPair returns a CipherPair keyed with defaultRC4Key.
func NewCipherPair() *CipherPair {
	pair := &CipherPair{}
	pair.updateKey(defaultRC4Key)
	return pair
}

// Reset re-keys both streams to "CD&ML", restarting their keystreams. Called
// when a peer's connection is reset by an incoming Syn.
func (p *CipherPair) Reset() {
	p.updateKey(resetRC4Key)
}

func (p *CipherPair) updateKey(key []byte) {
	// crypto/rc4 only fails on an empty key, which never happens here.
	decipher, _ := rc4.NewCipher(key)
	cipher, _ := rc4.NewCipher(key)
	p.decipher = decipher
	p.cipher = cipher
}

// Decrypt runs data through the inbound keystream and returns the result in
// a new slice; data itself is left unchanged.
func (p *CipherPair) Decrypt(data []byte) []byte {
	out := make([]byte, len(data))
	p.decipher.XORKeyStream(out, data)
	return out
}

// Encrypt runs data through the outbound keystream and returns the result in
// a new slice; data itself is left unchanged.
func (p *CipherPair) Encrypt(data []byte) []byte {
	out := make([]byte, len(data))
	p.cipher.XORKeyStream(out, data)
	return out
}
