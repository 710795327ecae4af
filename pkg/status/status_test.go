package status

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-mclib/mclient/pkg/protocol"
)

// pngHeader is the 8-byte PNG signature followed by a fake chunk.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}

func fixture(favicon string) string {
	return `{"version":{"name":"1.18.2","protocol":758},` +
		`"players":{"max":20,"online":3},` +
		`"description":{"text":"A Minecraft Server"}` + favicon + `}`
}

func TestParse(t *testing.T) {
	r, err := Parse(fixture(""))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.Version.Name != "1.18.2" || r.Version.Protocol != 758 {
		t.Errorf("Version = %+v", r.Version)
	}
	if r.Players.Online != 3 || r.Players.Max != 20 {
		t.Errorf("Players = %+v", r.Players)
	}
	if r.MOTD() != "A Minecraft Server" {
		t.Errorf("MOTD = %q", r.MOTD())
	}
	if _, err := r.Favicon(); !errors.Is(err, ErrNoFavicon) {
		t.Errorf("Favicon error = %v, want ErrNoFavicon", err)
	}

	r, err = Parse(`{"version":{"name":"x","protocol":1},"players":{"max":1,"online":0},"description":"plain motd"}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if r.MOTD() != "plain motd" {
		t.Errorf("MOTD = %q, want plain motd", r.MOTD())
	}

	if _, err := Parse("not json"); !errors.Is(err, protocol.ErrDecode) {
		t.Errorf("Parse error = %v, want ErrDecode", err)
	}
}

func TestParseMismatchedShapeKeepsRaw(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"string protocol", `{"version":{"name":"1.18.2","protocol":"758"},"players":{"max":20,"online":3}}`},
		{"not json", "not json"},
		{"players array", `{"players":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.raw)
			if !errors.Is(err, protocol.ErrDecode) {
				t.Fatalf("Parse error = %v, want ErrDecode", err)
			}
			if r == nil {
				t.Fatal("Parse returned a nil response")
			}
			if r.Raw != tt.raw || !r.Partial() {
				t.Errorf("Raw = %q, Partial = %v", r.Raw, r.Partial())
			}
			if !strings.Contains(r.Summary(), "unrecognized") {
				t.Errorf("Summary = %q", r.Summary())
			}

			dir := t.TempDir()
			if _, err := NewFileStore(dir).Save(r); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			got, err := os.ReadFile(filepath.Join(dir, ResponseFile))
			if err != nil || string(got) != tt.raw {
				t.Errorf("%s = %q, %v", ResponseFile, got, err)
			}
		})
	}
}

func TestFavicon(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)
	r, err := Parse(fixture(`,"favicon":"` + FaviconPrefix + encoded + `"`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	png, err := r.Favicon()
	if err != nil {
		t.Fatalf("Favicon error: %v", err)
	}
	if !bytes.Equal(png, pngHeader) {
		t.Errorf("Favicon = % X, want % X", png, pngHeader)
	}

	r.FaviconData = FaviconPrefix + "!!!"
	if _, err := r.Favicon(); err == nil || errors.Is(err, ErrNoFavicon) {
		t.Errorf("Favicon on bad base64 error = %v", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "status")
	store := NewFileStore(dir)

	raw := fixture(`,"favicon":"` + FaviconPrefix + base64.StdEncoding.EncodeToString(pngHeader) + `"`)
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	wrote, err := store.Save(r)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !wrote {
		t.Error("Save did not write the icon")
	}

	got, err := os.ReadFile(filepath.Join(dir, ResponseFile))
	if err != nil || string(got) != raw {
		t.Errorf("%s = %q, %v; want the raw response", ResponseFile, got, err)
	}
	icon, err := os.ReadFile(filepath.Join(dir, IconFile))
	if err != nil || !bytes.Equal(icon, pngHeader) {
		t.Errorf("%s = % X, %v", IconFile, icon, err)
	}
}

func TestFileStoreWithoutIcon(t *testing.T) {
	dir := t.TempDir()
	r, _ := Parse(fixture(""))

	wrote, err := NewFileStore(dir).Save(r)
	if err != nil || wrote {
		t.Fatalf("Save = %v, %v; want false, nil", wrote, err)
	}
	if _, err := os.Stat(filepath.Join(dir, IconFile)); !os.IsNotExist(err) {
		t.Errorf("icon file exists without favicon: %v", err)
	}
}
