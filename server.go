package prudp

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// recvBufferSize is the largest datagram the receive loop will read.
const recvBufferSize = 4096

// evictionTick is how often the background eviction task decrements every
// peer's kick timer.
const evictionTick = 3 * time.Second

// Server owns one UDP socket, the peer map, the route table, and the
// background eviction loop. It has no notion of any particular game
// service; Routes is populated by the embedder.
type Server struct {
	settings *Settings
	Routes   *RouteTable
	Observer Observer
	Logger   *logrus.Logger

	conn *net.UDPConn

	peersMu sync.RWMutex
	peers   map[string]*ClientConnection

	connectionIDCounter *Counter[uint32]

	metrics *serverMetrics

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewServer constructs a Server. settings and routes must not be nil;
// observer and registerer may be nil (a NoopObserver and no metrics
// registration are used, respectively).
func NewServer(settings *Settings, routes *RouteTable, observer Observer, registerer prometheus.Registerer) *Server {
	if observer == nil {
		observer = NoopObserver{}
	}

	logger := logrus.New()

	return &Server{
		settings:            settings,
		Routes:              routes,
		Observer:            observer,
		Logger:              logger,
		peers:               make(map[string]*ClientConnection),
		connectionIDCounter: NewCounter[uint32](10),
		metrics:             newServerMetrics(registerer),
		done:                make(chan struct{}),
	}
}

// Listen binds the UDP socket at address and starts the receive loop and
// the background eviction task. It returns once the socket is bound; both
// loops run in background goroutines.
func (s *Server) Listen(address string) error {
	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return ErrNoSocket
	}

	s.conn = conn

	s.wg.Add(2)
	go s.receiveLoop()
	go s.evictionLoop()

	s.Logger.WithField("address", address).Info("prudp server listening")

	return nil
}

// Close stops the receive and eviction loops and closes the socket.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.conn != nil {
			s.conn.Close()
		}
	})

	s.wg.Wait()
	return nil
}

func (s *Server) receiveLoop() {
	defer s.wg.Done()

	buffer := make([]byte, recvBufferSize)

	for {
		n, addr, err := s.conn.ReadFromUDP(buffer)
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.reportError(err)
				continue
			}
		}

		data := make([]byte, n)
		copy(data, buffer[:n])

		go s.handleDatagram(addr, data)
	}
}

func (s *Server) evictionLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(evictionTick)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpiredPeers()
		}
	}
}

func (s *Server) evictExpiredPeers() {
	s.peersMu.Lock()
	defer s.peersMu.Unlock()

	connected := 0
	for key, conn := range s.peers {
		conn.Lock()
		conn.DecrementKickTimer(uint32(evictionTick.Seconds()))
		evicted := conn.Evicted()
		isConnected := conn.IsConnected
		conn.Unlock()

		if evicted {
			delete(s.peers, key)
		} else if isConnected {
			connected++
		}
	}

	if s.metrics != nil {
		s.metrics.connectedClients.Set(float64(connected))
	}
}

func (s *Server) getOrCreateClient(addr *net.UDPAddr) *ClientConnection {
	key := addr.String()

	s.peersMu.RLock()
	conn, ok := s.peers[key]
	s.peersMu.RUnlock()

	if ok {
		return conn
	}

	s.peersMu.Lock()
	defer s.peersMu.Unlock()

	if conn, ok := s.peers[key]; ok {
		return conn
	}

	conn = NewClientConnection(addr, s.settings)
	s.peers[key] = conn

	return conn
}

func (s *Server) removeClient(key string) {
	s.peersMu.Lock()
	defer s.peersMu.Unlock()

	delete(s.peers, key)
}

func (s *Server) reportError(err error) {
	s.Logger.WithError(err).Warn("prudp packet processing error")
	s.Observer.OnError(err)
}

// handleDatagram runs the full per-datagram state machine step: parse,
// validate signature, gate, refresh liveness, synthesize an acknowledgement,
// dispatch, and advance the inbound sequence counter. Any error here is
// reported via the observer and ends processing of this one datagram; the
// peer itself is never evicted because of a malformed packet.
func (s *Server) handleDatagram(addr *net.UDPAddr, data []byte) {
	conn := s.getOrCreateClient(addr)

	// A Disconnect removes the peer only after the connection lock is
	// released, so the peer map lock is never taken while holding it.
	disconnected := false
	defer func() {
		if disconnected {
			s.removeClient(conn.Address)
		}
	}()

	conn.Lock()
	defer conn.Unlock()

	packet, err := decodePacket(data, s.settings.FlagsVersion)
	if err != nil {
		s.reportError(err)
		return
	}

	if s.metrics != nil {
		s.metrics.packetsProcessed.WithLabelValues(packet.Type.String()).Inc()
	}

	if err := packet.validateSignature(s.settings.FlagsVersion, conn.Signature); err != nil {
		s.reportError(err)
		return
	}

	if s.shouldIgnorePacket(conn, packet) {
		return
	}

	conn.KickTimer = uint32(s.settings.PingTimeout.Seconds())

	if packet.Flags.Has(FlagAck) || packet.Flags.Has(FlagMultiAck) {
		if packet.Type != PacketTypePing {
			conn.IncrementSequenceIDIn()
		}
		return
	}

	if err := s.handleConnectionInit(conn, packet); err != nil {
		s.reportError(err)
		return
	}

	s.acknowledge(conn, packet)
	s.dispatchByType(conn, packet)

	if packet.Type != PacketTypePing {
		conn.IncrementSequenceIDIn()
	}

	if packet.Type == PacketTypeDisconnect {
		disconnected = true
	}
}

// shouldIgnorePacket implements the gating predicate: a non-Syn packet from
// a not-yet-connected peer, or a non-Ping packet arriving behind the
// current inbound sequence counter, is silently discarded.
func (s *Server) shouldIgnorePacket(conn *ClientConnection, p *Packet) bool {
	if !conn.IsConnected && p.Type != PacketTypeSyn {
		return true
	}

	if p.Type != PacketTypePing && p.SequenceID < conn.SequenceIDIn() {
		return true
	}

	return false
}

func (s *Server) handleConnectionInit(conn *ClientConnection, p *Packet) error {
	switch p.Type {
	case PacketTypeSyn:
		if err := conn.ResetForSyn(uint32(s.settings.PingTimeout.Seconds())); err != nil {
			return err
		}
		conn.SessionID = uint8(s.connectionIDCounter.Increment())
	case PacketTypeConnect:
		conn.SetClientConnectionSignature(p.Options.ConnectionSignature)
	}

	return nil
}

func (s *Server) dispatchByType(conn *ClientConnection, p *Packet) {
	switch p.Type {
	case PacketTypeSyn:
		s.Observer.OnSyn(conn, p)
	case PacketTypeConnect:
		s.Observer.OnConnect(conn, p)
	case PacketTypeData:
		s.Observer.OnData(conn, p)
		s.handleData(conn, p)
	case PacketTypeDisconnect:
		s.Observer.OnDisconnect(conn, p)
	case PacketTypePing:
		s.Observer.OnPing(conn, p)
	}
}

func (s *Server) handleData(conn *ClientConnection, p *Packet) {
	if err := conn.DecryptPayload(p); err != nil {
		s.reportError(err)
		return
	}

	complete, err := conn.AddFragment(p.Payload, p.Options.FragmentID == 0)
	if err != nil {
		s.reportError(err)
		return
	}

	if complete == nil {
		return
	}

	complete, err = decompressPayload(complete, s.settings.UseCompression)
	if err != nil {
		s.reportError(err)
		return
	}

	responseBytes, _, err := s.Routes.Dispatch(conn, complete, s.Observer)
	if err != nil {
		s.reportError(err)
		return
	}

	if responseBytes == nil {
		return
	}

	if response, err := DecodeRMCResponse(responseBytes); err == nil && !response.Success && s.metrics != nil {
		s.metrics.rmcErrors.WithLabelValues(fmt.Sprintf("%d", response.ProtocolID)).Inc()
	}

	if err := s.Send(conn, p.Destination, p.Source, responseBytes); err != nil {
		s.reportError(err)
	}
}

// acknowledge synthesizes and sends an ack for stimulus if NeedsAck is set,
// except for a Connect packet carrying a non-empty payload, which a higher
// layer is expected to answer itself once it has processed the payload.
func (s *Server) acknowledge(conn *ClientConnection, stimulus *Packet) {
	if !stimulus.Flags.Has(FlagNeedsAck) {
		return
	}

	if stimulus.Type == PacketTypeConnect && len(stimulus.Payload) > 0 {
		return
	}

	ack := s.buildAck(conn, stimulus)

	repeats := 1
	if stimulus.Type == PacketTypeDisconnect {
		repeats = 3
	}

	for i := 0; i < repeats; i++ {
		if err := s.sendAck(conn, ack); err != nil {
			s.reportError(err)
		}
	}
}

func (s *Server) buildAck(conn *ClientConnection, stimulus *Packet) *Packet {
	ack := &Packet{
		Type:        stimulus.Type,
		Source:      stimulus.Destination,
		Destination: stimulus.Source,
		SessionID:   stimulus.SessionID,
		SubstreamID: stimulus.SubstreamID,
		SequenceID:  stimulus.SequenceID,
	}

	ack.Flags.Set(FlagAck)
	ack.Flags.Set(FlagHasSize)

	switch stimulus.Type {
	case PacketTypeSyn:
		ack.Options.SupportedFunctions = stimulus.Options.SupportedFunctions
		ack.Options.MaxSubstreamID = 0
		copy(ack.Options.ConnectionSignature[:], conn.Signature.ServerConnectionSignature)
	case PacketTypeConnect:
		ack.Options.SupportedFunctions = stimulus.Options.SupportedFunctions
		ack.Options.InitialSequenceID = 10000
		ack.Options.MaxSubstreamID = 0
	case PacketTypeData:
		ack.Flags.Clear(FlagAck)
		ack.Flags.Set(FlagMultiAck)
		ack.Options.FragmentID = stimulus.Options.FragmentID

		if s.settings.NEXVersion >= 2 {
			ack.SequenceID = 0
			ack.SubstreamID = 1
			payload := make([]byte, 4)
			binary.LittleEndian.PutUint16(payload[2:4], stimulus.SequenceID)
			ack.Payload = payload
		}
	}

	return ack
}

// sendAck encodes and sends a synthesized ack without touching the outbound
// sequence counter, since its sequence id is mirrored from the stimulus
// rather than freshly assigned.
func (s *Server) sendAck(conn *ClientConnection, ack *Packet) error {
	data := ack.encode(s.settings.FlagsVersion, conn.Signature)
	return s.sendRaw(conn.UDPAddr, data)
}

// fragmentPayload splits payload into chunks of at most fragmentSize bytes,
// always including a final (possibly empty) chunk, matching the boundary
// behavior where a payload that is an exact multiple of fragmentSize still
// produces a trailing empty fragment carrying fragment id 0.
func fragmentPayload(payload []byte, fragmentSize uint16) [][]byte {
	if fragmentSize == 0 {
		return [][]byte{payload}
	}

	count := len(payload) / int(fragmentSize)
	fragments := make([][]byte, 0, count+1)

	for i := 0; i <= count; i++ {
		start := i * int(fragmentSize)

		if i == count {
			fragments = append(fragments, payload[start:])
			continue
		}

		fragments = append(fragments, payload[start:start+int(fragmentSize)])
	}

	return fragments
}

// Send fragments payload and transmits each fragment as a Reliable,
// NeedsAck Data packet, assigning sequence ids and encrypting as it goes.
func (s *Server) Send(conn *ClientConnection, source, destination uint8, payload []byte) error {
	payload, err := compressPayload(payload, s.settings.UseCompression)
	if err != nil {
		return err
	}

	fragments := fragmentPayload(payload, conn.fragmentSize)

	if len(fragments) > 256 {
		return &TooManyFragmentsError{SequenceID: conn.SequenceIDIn(), FragmentID: len(fragments)}
	}

	for i, fragment := range fragments {
		fragmentID := uint8(i + 1)
		if i == len(fragments)-1 {
			fragmentID = 0
		}

		packet := &Packet{
			Type:        PacketTypeData,
			Source:      source,
			Destination: destination,
			SessionID:   conn.SessionID,
			Payload:     fragment,
		}
		packet.Flags.Set(FlagReliable)
		packet.Flags.Set(FlagNeedsAck)
		packet.Options.FragmentID = fragmentID

		if err := s.sendPacket(conn, packet); err != nil {
			return err
		}
	}

	return nil
}

func (s *Server) sendPacket(conn *ClientConnection, packet *Packet) error {
	packet.SequenceID = conn.IncrementSequenceIDOut()

	conn.EncryptOutbound(packet)

	data := packet.encode(s.settings.FlagsVersion, conn.Signature)

	return s.sendRaw(conn.UDPAddr, data)
}

func (s *Server) sendRaw(addr *net.UDPAddr, data []byte) error {
	_, err := s.conn.WriteToUDP(data, addr)
	return err
}

