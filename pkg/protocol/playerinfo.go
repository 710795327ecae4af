package protocol

import (
	"errors"

	"github.com/google/uuid"
)

// PlayerInfo actions.
const (
	PlayerInfoAdd               int32 = 0
	PlayerInfoUpdateGameMode    int32 = 1
	PlayerInfoUpdateLatency     int32 = 2
	PlayerInfoUpdateDisplayName int32 = 3
	PlayerInfoRemove            int32 = 4
)

// PlayerInfo is a roster update. Only the fields relevant to Action are set
// on each entry.
type PlayerInfo struct {
	Action  int32
	Entries []PlayerInfoEntry
	// Skipped is true when Action isn't understood and the entries were not parsed.
	Skipped bool
}

// PlayerInfoEntry is one player in a roster update.
type PlayerInfoEntry struct {
	UUID        uuid.UUID
	Name        string
	Properties  int
	GameMode    int32
	Latency     int32
	DisplayName string
}

// DecodePlayerInfo reads a roster update from c. For every known action the
// whole body is consumed; any leftover byte is a protocol mismatch.
func DecodePlayerInfo(c *Cursor) (PlayerInfo, error) {
	action, err := c.VarInt()
	if err != nil {
		return PlayerInfo{}, err
	}
	count, err := c.VarInt()
	if err != nil {
		return PlayerInfo{}, err
	}

	info := PlayerInfo{Action: action}
	if action < PlayerInfoAdd || action > PlayerInfoRemove {
		info.Skipped = true
		return info, nil
	}
	if count < 0 || int(count) > c.Remaining()/16 {
		return PlayerInfo{}, ErrProtocolMismatch
	}

	info.Entries = make([]PlayerInfoEntry, 0, count)
	for range count {
		var e PlayerInfoEntry
		if e.UUID, err = c.UUID(); err != nil {
			return PlayerInfo{}, err
		}
		switch action {
		case PlayerInfoAdd:
			err = readPlayerAdd(c, &e)
		case PlayerInfoUpdateGameMode:
			e.GameMode, err = c.VarInt()
		case PlayerInfoUpdateLatency:
			e.Latency, err = c.VarInt()
		case PlayerInfoUpdateDisplayName:
			e.DisplayName, err = readDisplayName(c)
		}
		if err != nil {
			return PlayerInfo{}, err
		}
		info.Entries = append(info.Entries, e)
	}
	if err := c.Expect(); err != nil {
		return PlayerInfo{}, err
	}
	return info, nil
}

func readPlayerAdd(c *Cursor, e *PlayerInfoEntry) error {
	var err error
	if e.Name, err = c.String(); err != nil {
		return err
	}

	props, err := c.VarInt()
	if err != nil {
		return err
	}
	if props < 0 {
		return ErrProtocolMismatch
	}
	e.Properties = int(props)
	for range props {
		// name, value, optional signature
		if err := c.SkipString(); err != nil {
			return err
		}
		if err := c.SkipString(); err != nil {
			return err
		}
		signed, err := c.Bool()
		if err != nil {
			return err
		}
		if signed {
			if err := c.SkipString(); err != nil {
				return err
			}
		}
	}

	if e.GameMode, err = c.VarInt(); err != nil {
		return err
	}
	if e.Latency, err = c.VarInt(); err != nil {
		return err
	}
	e.DisplayName, err = readDisplayName(c)
	return err
}

// readDisplayName reads the optional display name. The field is consumed
// even when it holds invalid UTF-8; it then reads as absent so the rest of
// the batch still decodes.
func readDisplayName(c *Cursor) (string, error) {
	present, err := c.Bool()
	if err != nil || !present {
		return "", err
	}
	name, err := c.String()
	if errors.Is(err, ErrDecode) {
		return "", nil
	}
	return name, err
}
