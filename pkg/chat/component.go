// Package chat decodes the JSON chat components sent by the server into
// display lines.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/go-mclib/mclient/pkg/protocol"
)

// Translation keys with a dedicated template.
const (
	KeyChatText        = "chat.type.text"
	KeyWhisperIncoming = "commands.message.display.incoming"
	KeyAnnouncement    = "chat.type.announcement"
	KeyPlayerJoined    = "multiplayer.player.joined"
	KeyPlayerLeft      = "multiplayer.player.left"
)

// Component is the subset of a chat component this client understands.
// Nested "extra" trees are not interpreted.
type Component struct {
	Text          string            `json:"text,omitempty"`
	Translate     string            `json:"translate,omitempty"`
	With          []json.RawMessage `json:"with,omitempty"`
	Insertion     string            `json:"insertion,omitempty"`
	Color         string            `json:"color,omitempty"`
	Bold          bool              `json:"bold,omitempty"`
	Italic        bool              `json:"italic,omitempty"`
	Underlined    bool              `json:"underlined,omitempty"`
	Strikethrough bool              `json:"strikethrough,omitempty"`
	Obfuscated    bool              `json:"obfuscated,omitempty"`
}

// Style holds the formatting flags of a message.
type Style struct {
	Bold          bool
	Italic        bool
	Underlined    bool
	Strikethrough bool
	Obfuscated    bool
	// Color is a named chat color such as "gold", empty for the default.
	Color string
}

// Message is a decoded chat line.
type Message struct {
	Style Style
	Text  string
}

// Decode parses a chat component. Unknown translation keys yield a Message
// with empty Text. Malformed JSON returns protocol.ErrDecode.
func Decode(raw string) (Message, error) {
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return Message{Text: s}, nil
	}

	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Message{}, fmt.Errorf("%w: chat component: %v", protocol.ErrDecode, err)
	}

	msg := Message{
		Style: Style{
			Bold:          c.Bold,
			Italic:        c.Italic,
			Underlined:    c.Underlined,
			Strikethrough: c.Strikethrough,
			Obfuscated:    c.Obfuscated,
			Color:         c.Color,
		},
	}
	if c.Translate == "" {
		msg.Text = c.Text
		return msg, nil
	}
	msg.Text = c.render()
	return msg, nil
}

func (c Component) render() string {
	switch c.Translate {
	case KeyChatText, KeyWhisperIncoming:
		if len(c.With) != 2 {
			return ""
		}
		var text string
		if sender := insertion(c.With[0]); sender != "" {
			text = "<" + sender + "> "
		}
		return text + argText(c.With[1])
	case KeyAnnouncement:
		if len(c.With) != 2 {
			return ""
		}
		return "[" + argText(c.With[0]) + "] " + argText(c.With[1])
	case KeyPlayerJoined:
		if len(c.With) != 1 {
			return ""
		}
		return argText(c.With[0]) + " joined the game"
	case KeyPlayerLeft:
		if len(c.With) != 1 {
			return ""
		}
		return argText(c.With[0]) + " left the game"
	}
	return ""
}

// argText returns a translation argument that is either a bare JSON string
// or a component with a "text" field.
func argText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var c Component
	if json.Unmarshal(raw, &c) == nil {
		return c.Text
	}
	return ""
}

func insertion(raw json.RawMessage) string {
	var c Component
	if json.Unmarshal(raw, &c) != nil {
		return ""
	}
	return c.Insertion
}
