package prudp

// Observer receives the runtime's observability callbacks. All methods are
// optional in spirit — embed NoopObserver to only implement the ones a
// particular integration cares about.
type Observer interface {
	OnSyn(conn *ClientConnection, packet *Packet)
	OnConnect(conn *ClientConnection, packet *Packet)
	OnData(conn *ClientConnection, packet *Packet)
	OnDisconnect(conn *ClientConnection, packet *Packet)
	OnPing(conn *ClientConnection, packet *Packet)
	OnRMCRequest(conn *ClientConnection, request *RMCRequest)
	OnProtocolMethod(name string)
	OnError(err error)
}

// NoopObserver implements Observer with no-ops; embed it to pick and choose
// which callbacks to override.
type NoopObserver struct{}

func (NoopObserver) OnSyn(*ClientConnection, *Packet)        {}
func (NoopObserver) OnConnect(*ClientConnection, *Packet)    {}
func (NoopObserver) OnData(*ClientConnection, *Packet)       {}
func (NoopObserver) OnDisconnect(*ClientConnection, *Packet) {}
func (NoopObserver) OnPing(*ClientConnection, *Packet)       {}
func (NoopObserver) OnRMCRequest(*ClientConnection, *RMCRequest) {}
func (NoopObserver) OnProtocolMethod(string)                 {}
func (NoopObserver) OnError(error)                           {}
