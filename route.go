package prudp

import (
	"fmt"
	"sync"
)

// RouteKey identifies a single RMC method within a protocol's namespace.
type RouteKey struct {
	ProtocolID uint8
	MethodID   uint32
}

// RouteHandler handles one decoded RMC request and returns either the
// success payload or an error. An error implementing ResultCoder is mapped
// to the matching RMC error code; any other error maps to the generic
// "unknown NexError" code (0, with the error bit set).
type RouteHandler func(conn *ClientConnection, parameters []byte) ([]byte, error)

// ResultCoder is implemented by errors that carry a specific 32-bit NEX
// result code, such as *RMCError.
type ResultCoder interface {
	ResultCode() uint32
}

// RouteTable is a runtime registration table mapping (protocol_id,
// method_id) to a handler. It replaces the per-method code generation the
// reference implementation relies on with an ordinary concurrent map, per
// the registration-table guidance for this dispatch layer.
type RouteTable struct {
	mu       sync.RWMutex
	handlers map[RouteKey]RouteHandler
}

// NewRouteTable returns an empty RouteTable.
func NewRouteTable() *RouteTable {
	return &RouteTable{handlers: make(map[RouteKey]RouteHandler)}
}

// Register installs handler under (protocolID, methodID), replacing any
// previous registration.
func (t *RouteTable) Register(protocolID uint8, methodID uint32, handler RouteHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.handlers[RouteKey{ProtocolID: protocolID, MethodID: methodID}] = handler
}

// Lookup returns the handler registered for key, if any.
func (t *RouteTable) Lookup(key RouteKey) (RouteHandler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	handler, ok := t.handlers[key]
	return handler, ok
}

// Dispatch decodes a Data payload as an RMCRequest, looks up its handler,
// invokes it, and returns the encoded response the caller should send back.
// A request for an unregistered route returns (nil, nil, nil): the stimulus
// is silently dropped per the dispatch contract, leaving it to the caller to
// still acknowledge the packet and to surface the miss as an observability
// event if it wants to.
func (t *RouteTable) Dispatch(conn *ClientConnection, payload []byte, observer Observer) ([]byte, *RMCRequest, error) {
	request, err := DecodeRMCRequest(payload)
	if err != nil {
		return nil, nil, err
	}

	if observer != nil {
		observer.OnRMCRequest(conn, request)
	}

	handler, ok := t.Lookup(RouteKey{ProtocolID: request.ProtocolID, MethodID: request.MethodID})
	if !ok {
		return nil, request, nil
	}

	if observer != nil {
		observer.OnProtocolMethod(routeName(request.ProtocolID, request.MethodID))
	}

	result, handlerErr := handler(conn, request.Parameters)
	if handlerErr != nil {
		if observer != nil {
			observer.OnError(handlerErr)
		}

		code := uint32(0)
		if coder, ok := handlerErr.(ResultCoder); ok {
			code = coder.ResultCode()
		}

		response := NewRMCError(request.ProtocolID, request.CustomID, request.CallID, code)
		return response.Encode(), request, nil
	}

	response := NewRMCSuccess(request.ProtocolID, request.CustomID, request.CallID, request.MethodID, result)
	return response.Encode(), request, nil
}

func routeName(protocolID uint8, methodID uint32) string {
	return RouteKey{ProtocolID: protocolID, MethodID: methodID}.String()
}

// String renders a RouteKey for logging, e.g. "protocol(1)/method(1)".
func (k RouteKey) String() string {
	return fmt.Sprintf("protocol(%d)/method(%d)", k.ProtocolID, k.MethodID)
}
