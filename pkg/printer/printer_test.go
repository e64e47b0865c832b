package printer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentEmitsEscPosCommands(t *testing.T) {
	d := NewDocument(32)
	d.SetAlign(AlignCenter).SetBold(true).Text("ALUWORKS").SetBold(false).Cut()

	want := []byte{ESC, '@', ESC, 'a', AlignCenter, ESC, 'E', 1}
	want = append(want, []byte("ALUWORKS\n")...)
	want = append(want, ESC, 'E', 0, GS, 'V', 0x00)
	assert.Equal(t, want, d.Bytes())
}

func TestTextDocumentPadsInsteadOfCommands(t *testing.T) {
	d := NewTextDocument(10)
	d.SetAlign(AlignCenter).SetBold(true).Text("abcd").SetAlign(AlignRight).Text("xy").SetAlign(AlignLeft).Cut()

	assert.Equal(t, "   abcd\n        xy\n", d.String())
}

func TestKeyValue(t *testing.T) {
	d := NewTextDocument(20)
	d.KeyValue("Total", "SLE 100.00")
	d.KeyValue("A very long label here", "9.00")

	lines := strings.Split(strings.TrimRight(d.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Total     SLE 100.00", lines[0])
	assert.Equal(t, "A very long label here", lines[1])
	assert.Equal(t, "                9.00", lines[2])
}

func TestItemLine(t *testing.T) {
	d := NewTextDocument(24)
	d.ItemLine("4", "Aluminium profile 6m anodised", "12.50", "50.00")

	assert.Equal(t,
		"Aluminium profile 6m\n"+
			"anodised\n"+
			"  4 x 12.50        50.00\n",
		d.String())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("   ", 5))
	assert.Equal(t, []string{"abcde", "fg hi"}, wrap("abcdefg hi", 5))
	assert.Equal(t, []string{"ab cd", "ef"}, wrap("ab cd ef", 5))
}

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		typ      string
		path     string
		address  string
		wantKind string
		wantErr  bool
	}{
		{name: "none", typ: "none", wantKind: "none"},
		{name: "empty", typ: "", wantKind: "none"},
		{name: "usb", typ: "usb", path: "/dev/usb/lp0", wantKind: "usb"},
		{name: "usb without path", typ: "usb", wantErr: true},
		{name: "network", typ: "network", address: "10.0.0.5:9100", wantKind: "network"},
		{name: "network without address", typ: "network", wantErr: true},
		{name: "file", typ: "file", path: "receipts.bin", wantKind: "file"},
		{name: "unknown", typ: "bluetooth", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.typ, tt.path, tt.address)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, p.Kind())
		})
	}
}

func TestFilePrinterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spool.bin")
	p := NewFilePrinter(path)

	require.NoError(t, p.Print([]byte("one\n")))
	require.NoError(t, p.Print([]byte("two\n")))
	assert.True(t, p.IsConnected())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
}
