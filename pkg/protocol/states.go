package protocol

// ProtocolVersion is the only protocol version this client speaks (1.18.2).
const ProtocolVersion = 758

// State is the protocol state of a connection. Packet IDs are only
// meaningful relative to the state they are sent in.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StatePlay
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateHandshake:
		return "Handshake"
	case StateStatus:
		return "Status"
	case StateLogin:
		return "Login"
	case StatePlay:
		return "Play"
	}
	return "UnknownState"
}

// Intent values carried by the handshake's next-state field.
const (
	IntentStatus int32 = 1
	IntentLogin  int32 = 2
)

// Next returns the state a handshake with the given intent leads to.
func Next(intent int32) (State, bool) {
	switch intent {
	case IntentStatus:
		return StateStatus, true
	case IntentLogin:
		return StateLogin, true
	}
	return StateHandshake, false
}

// Serverbound packet IDs.
const (
	ServerboundHandshake           int32 = 0x00
	ServerboundStatusRequest       int32 = 0x00
	ServerboundPingRequest         int32 = 0x01
	ServerboundLoginStart          int32 = 0x00
	ServerboundLoginPluginResponse int32 = 0x02
	ServerboundChatMessage         int32 = 0x03
	ServerboundKeepAlive           int32 = 0x0F
	ServerboundPong                int32 = 0x1D
)

// Clientbound packet IDs.
const (
	ClientboundStatusResponse     int32 = 0x00
	ClientboundPongResponse       int32 = 0x01
	ClientboundLoginDisconnect    int32 = 0x00
	ClientboundEncryptionRequest  int32 = 0x01
	ClientboundLoginSuccess       int32 = 0x02
	ClientboundSetCompression     int32 = 0x03
	ClientboundLoginPluginRequest int32 = 0x04
	ClientboundChatMessage        int32 = 0x0F
	ClientboundDisconnect         int32 = 0x1A
	ClientboundKeepAlive          int32 = 0x21
	ClientboundPing               int32 = 0x30
	ClientboundPlayerInfo         int32 = 0x36
)
