package prudp

import "time"

// Settings is the process-level configuration for a Server. It is a plain
// struct the embedder constructs and passes to NewServer; loading it from
// flags, environment variables, or a config file is left to the embedder.
type Settings struct {
	// AccessKey is the per-deployment shared secret. Its MD5 derives the
	// HMAC signature key, and its byte-sum derives the signature base.
	AccessKey string

	// NEXVersion gates the aggregate-ack payload format (>=2 switches to
	// the explicit substream/sequence-id form).
	NEXVersion uint32

	// PRUDPVersion and ChecksumVersion are carried for settings parity with
	// the reference server's Settings struct. PRUDP v1 is the only packet
	// version this runtime decodes and HMAC-MD5 the only checksum it
	// computes, so neither field changes runtime behavior; they exist so an
	// embedder migrating a reference deployment's configuration has
	// somewhere to put these values.
	PRUDPVersion   uint8
	ChecksumVersion uint8

	// FlagsVersion selects the type_flags bit layout: 0 (3-bit kind) or
	// 1 (4-bit kind). Must be agreed with the client out-of-band.
	FlagsVersion FlagsVersion

	// FragmentSize is the maximum payload bytes per outbound fragment.
	FragmentSize uint16

	// PingTimeout is how long a peer may stay silent before eviction.
	PingTimeout time.Duration

	// UseCompression toggles zlib compression of outbound payloads. A
	// pass-through by default, matching the reference runtime.
	UseCompression bool

	// MaxPendingFragments caps the number of buffered inbound fragments per
	// peer before TooManyPendingFragmentsError is raised. The source leaves
	// this unspecified; this runtime enforces a generous fixed cap rather
	// than buffering without limit.
	MaxPendingFragments int
}

// DefaultSettings returns the Settings a fresh server starts with absent any
// embedder configuration, mirroring the reference defaults.
func DefaultSettings() *Settings {
	return &Settings{
		AccessKey:           "",
		NEXVersion:          0,
		PRUDPVersion:        1,
		ChecksumVersion:     1,
		FlagsVersion:        FlagsVersion1,
		FragmentSize:        1300,
		PingTimeout:         5 * time.Second,
		UseCompression:      false,
		MaxPendingFragments: 128,
	}
}
