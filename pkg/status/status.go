// Package status models the server list ping response and persists it.
package status

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-mclib/mclient/pkg/chat"
	"github.com/go-mclib/mclient/pkg/protocol"
)

// FaviconPrefix precedes the base64 PNG in the favicon field.
const FaviconPrefix = "data:image/png;base64,"

// ErrNoFavicon is returned by Favicon when the response carries no PNG icon.
var ErrNoFavicon = errors.New("status response has no png favicon")

// Version is the server's advertised version.
type Version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// Players is the advertised player count and sample.
type Players struct {
	Max    int `json:"max"`
	Online int `json:"online"`
	Sample []struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	} `json:"sample,omitempty"`
}

// Response is a parsed status response. Raw keeps the exact JSON received.
type Response struct {
	Version     Version         `json:"version"`
	Players     Players         `json:"players"`
	Description json.RawMessage `json:"description"`
	FaviconData string          `json:"favicon,omitempty"`

	Raw string `json:"-"`

	partial bool
}

// Parse decodes a status JSON document. The returned Response is never nil:
// when the document does not fit the expected shape it keeps Raw and whatever
// fields did decode, and the error wraps protocol.ErrDecode.
func Parse(raw string) (*Response, error) {
	r := &Response{Raw: raw}
	if err := json.Unmarshal([]byte(raw), r); err != nil {
		r.partial = true
		return r, fmt.Errorf("%w: status response: %v", protocol.ErrDecode, err)
	}
	return r, nil
}

// Partial reports whether the raw document failed to decode cleanly.
func (r *Response) Partial() bool { return r.partial }

// MOTD returns the description as plain text. Both the string and the
// component form are accepted.
func (r *Response) MOTD() string {
	if len(r.Description) == 0 {
		return ""
	}
	msg, err := chat.Decode(string(r.Description))
	if err != nil {
		return ""
	}
	return msg.Text
}

// Favicon returns the decoded PNG icon.
func (r *Response) Favicon() ([]byte, error) {
	data, ok := strings.CutPrefix(r.FaviconData, FaviconPrefix)
	if !ok {
		return nil, ErrNoFavicon
	}
	png, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode favicon: %w", err)
	}
	return png, nil
}

// Summary is a one-line description of the server.
func (r *Response) Summary() string {
	if r.partial {
		return fmt.Sprintf("unrecognized status response (%d bytes)", len(r.Raw))
	}
	return fmt.Sprintf("%s (protocol %d), %d/%d players online, motd: %q",
		r.Version.Name, r.Version.Protocol, r.Players.Online, r.Players.Max, r.MOTD())
}
