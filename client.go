package prudp

import (
	"crypto/rand"
	"net"
	"sync"
)

// ClientConnection is the per-peer session state: everything the state
// machine, cipher, and fragment reassembler need to process one peer's
// datagrams. Every mutating method assumes the caller already holds the
// connection's lock; the server is responsible for acquiring it before
// touching a connection and releasing it before acquiring the peer map's
// lock, per the outer-then-inner acquisition order.
type ClientConnection struct {
	mu sync.Mutex

	Address string       // the net.Addr.String() discriminator used as the peer map key
	UDPAddr *net.UDPAddr // resolved address the server actually sends datagrams to

	SessionID   uint8
	PID         uint32
	IsConnected bool
	KickTimer   uint32 // seconds remaining; 0 means eviction

	// LocalStationURL is the rendezvous address this connection last
	// advertised to its peer, if any. The core runtime never reads it; it
	// exists so a handler can stash and retrieve it.
	LocalStationURL string

	flagsVersion FlagsVersion
	fragmentSize uint16
	maxFragments int

	Ciphers   *CipherPair
	Signature *SignatureContext

	sequenceIDIn  *Counter[uint16]
	sequenceIDOut *Counter[uint16]

	fragmentBuffer []byte
	fragmentCount  int
}

// NewClientConnection creates a fresh, not-yet-connected peer. The source
// treats the connection as existing from the first datagram seen from an
// unknown address, well before a Syn is processed, which is why IsConnected
// starts false here rather than true.
func NewClientConnection(address *net.UDPAddr, settings *Settings) *ClientConnection {
	return &ClientConnection{
		Address:       address.String(),
		UDPAddr:       address,
		IsConnected:   false,
		KickTimer:     uint32(settings.PingTimeout.Seconds()),
		flagsVersion:  settings.FlagsVersion,
		fragmentSize:  settings.FragmentSize,
		maxFragments:  settings.MaxPendingFragments,
		Ciphers:       NewCipherPair(),
		Signature:     NewSignatureContext(settings.AccessKey),
		sequenceIDIn:  NewCounter[uint16](0),
		sequenceIDOut: NewCounter[uint16](0),
	}
}

// Lock acquires the connection's exclusive lock.
func (c *ClientConnection) Lock() { c.mu.Lock() }

// Unlock releases the connection's exclusive lock.
func (c *ClientConnection) Unlock() { c.mu.Unlock() }

// ResetForSyn re-initializes everything a Syn handshake restarts: the
// signature context, the cipher pair, both sequence counters, and the
// fragment reassembly buffer. It then marks the peer connected, refreshes
// its kick timer, and fills a fresh random server connection signature.
func (c *ClientConnection) ResetForSyn(pingTimeout uint32) error {
	c.Signature.Reset()
	c.Ciphers.Reset()
	c.sequenceIDIn.Set(0)
	c.sequenceIDOut.Set(0)
	c.fragmentBuffer = nil
	c.fragmentCount = 0

	c.IsConnected = true
	c.KickTimer = pingTimeout

	signature := make([]byte, 16)
	if _, err := rand.Read(signature); err != nil {
		return err
	}
	c.Signature.ServerConnectionSignature = signature

	return nil
}

// SetClientConnectionSignature records the signature the peer supplied in
// its Connect packet.
func (c *ClientConnection) SetClientConnectionSignature(signature [16]byte) {
	c.Signature.ClientConnectionSignature = append([]byte(nil), signature[:]...)
}

// SequenceIDIn returns the connection's current inbound sequence counter
// without advancing it.
func (c *ClientConnection) SequenceIDIn() uint16 {
	return c.sequenceIDIn.Value()
}

// IncrementSequenceIDIn advances the inbound sequence counter by one,
// called for every accepted non-Ping packet.
func (c *ClientConnection) IncrementSequenceIDIn() uint16 {
	return c.sequenceIDIn.Increment()
}

// IncrementSequenceIDOut advances the outbound sequence counter by one,
// called once per transmitted fragment.
func (c *ClientConnection) IncrementSequenceIDOut() uint16 {
	return c.sequenceIDOut.Increment()
}

// DecrementKickTimer saturating-subtracts seconds from the kick timer.
func (c *ClientConnection) DecrementKickTimer(seconds uint32) {
	if c.KickTimer <= seconds {
		c.KickTimer = 0
		return
	}

	c.KickTimer -= seconds
}

// Evicted reports whether the connection's kick timer has run out.
func (c *ClientConnection) Evicted() bool {
	return c.KickTimer == 0
}

// CanDecryptPayload reports whether p is eligible to have its payload
// decrypted and, if not, why.
func (c *ClientConnection) CanDecryptPayload(p *Packet) error {
	if p.Type != PacketTypeData {
		return ErrNotDataPacket
	}

	if p.Flags.Has(FlagMultiAck) {
		return ErrHoldsNoPayload
	}

	if p.SequenceID != c.SequenceIDIn() {
		return ErrOutOfOrder
	}

	return nil
}

// DecryptPayload decrypts p's payload in place through the inbound
// keystream, after checking CanDecryptPayload.
func (c *ClientConnection) DecryptPayload(p *Packet) error {
	if err := c.CanDecryptPayload(p); err != nil {
		return err
	}

	p.Payload = c.Ciphers.Decrypt(p.Payload)
	return nil
}

// canEncryptPayload reports whether p is eligible for outbound encryption.
func (c *ClientConnection) canEncryptPayload(p *Packet) error {
	if p.Type != PacketTypeData {
		return ErrNotDataPacket
	}

	if p.Flags.Has(FlagMultiAck) {
		return ErrHoldsNoPayload
	}

	if len(p.Payload) == 0 {
		return ErrEmptyPayload
	}

	return nil
}

// EncryptOutbound encrypts p's payload in place through the outbound
// keystream if it is eligible; otherwise it leaves the payload untouched,
// matching the reference encoder's silent skip for acks/pings/empty Data.
func (c *ClientConnection) EncryptOutbound(p *Packet) {
	if c.canEncryptPayload(p) != nil {
		return
	}

	p.Payload = c.Ciphers.Encrypt(p.Payload)
}

// AddFragment appends a reassembled Data fragment's decrypted payload to the
// connection's buffer. When isFinal is true (fragment_id == 0) the buffered
// bytes are returned and the buffer is cleared; otherwise AddFragment
// returns (nil, nil) and waits for more fragments.
func (c *ClientConnection) AddFragment(payload []byte, isFinal bool) ([]byte, error) {
	if c.fragmentCount >= c.maxFragments {
		return nil, &TooManyPendingFragmentsError{
			SequenceID: c.SequenceIDIn(),
			Pending:    c.fragmentCount,
			Limit:      c.maxFragments,
		}
	}

	c.fragmentBuffer = append(c.fragmentBuffer, payload...)
	c.fragmentCount++

	if !isFinal {
		return nil, nil
	}

	complete := c.fragmentBuffer
	c.fragmentBuffer = nil
	c.fragmentCount = 0

	return complete, nil
}
