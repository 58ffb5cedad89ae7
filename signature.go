package prudp

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/binary"
)

// SignatureContext holds the per-peer key material used to compute and
// validate packet HMACs. ClientConnectionSignature and ServerConnectionSignature
// start out nil (zero-length): a packet signed or validated before a Syn/Connect
// handshake has established either one feeds nothing into the HMAC for that
// field, not 16 zero bytes, matching the reference client's freshly constructed
// signature context.
type SignatureContext struct {
	SignatureKey              [16]byte
	SignatureBase             uint32
	SessionKey                []byte
	ClientConnectionSignature []byte
	ServerConnectionSignature []byte
}

// NewSignatureContext derives a SignatureContext from the server's access
// key: the signature key is MD5(access_key), and the signature base is the
// sum of the access key's bytes as a uint32.
func NewSignatureContext(accessKey string) *SignatureContext {
	ctx := &SignatureContext{
		SignatureKey: md5.Sum([]byte(accessKey)),
	}

	var sum uint32
	for _, b := range []byte(accessKey) {
		sum += uint32(b)
	}
	ctx.SignatureBase = sum

	return ctx
}

// Reset clears the session key and both connection signatures, as happens
// on a Syn-driven connection reset.
func (ctx *SignatureContext) Reset() {
	ctx.SessionKey = nil
	ctx.ClientConnectionSignature = nil
	ctx.ServerConnectionSignature = nil
}

// calculateSignature computes the 16-byte HMAC-MD5 signature for a packet.
// headerSlice is the 12-byte header[2:14] region (header excluding magic);
// only its final 8 bytes (source, destination, type_flags, session_id,
// substream_id, sequence_id) actually feed the HMAC, matching the reference
// decoder's byte-exact signature computation.
func calculateSignature(headerSlice []byte, payload []byte, connectionSignature []byte, options []byte, ctx *SignatureContext) []byte {
	mac := hmac.New(md5.New, ctx.SignatureKey[:])

	mac.Write(headerSlice[4:])
	mac.Write(ctx.SessionKey)

	var base [4]byte
	binary.LittleEndian.PutUint32(base[:], ctx.SignatureBase)
	mac.Write(base[:])

	mac.Write(connectionSignature)
	mac.Write(options)
	mac.Write(payload)

	return mac.Sum(nil)
}
