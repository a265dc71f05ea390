package printer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Config{Type: "none"})
	require.NoError(t, err)
	assert.False(t, p.IsConnected())

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)
	_, err = New(Config{Type: "network"})
	assert.Error(t, err)
	_, err = New(Config{Type: "laser"})
	assert.Error(t, err)
}

func TestFilePrinterSpoolsJobs(t *testing.T) {
	dir := t.TempDir()
	p, err := New(Config{Type: "file", SpoolDir: dir})
	require.NoError(t, err)

	require.NoError(t, p.Print([]byte("one")))
	require.NoError(t, p.Print([]byte("two")))
	assert.True(t, p.IsConnected())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDocumentLayout(t *testing.T) {
	doc := NewDocument(20)
	doc.SetAlign(AlignCenter).Text("SHOP").SetAlign(AlignLeft)
	doc.Separator('-')
	doc.KeyValue("Total:", "9.99")
	doc.ItemLine("2", "Tea", "4.00")
	doc.ItemLine("250 g", "Basmati rice premium", "1.25")

	lines := strings.Split(strings.TrimRight(doc.String(), "\n"), "\n")
	assert.Equal(t, "        SHOP", lines[0])
	assert.Equal(t, strings.Repeat("-", 20), lines[1])
	assert.Equal(t, "Total:          9.99", lines[2])
	assert.Equal(t, "2 x Tea         4.00", lines[3])
	assert.Equal(t, "250 g x Basmati rice", lines[4])
	assert.Equal(t, "premium", lines[5])
	assert.Equal(t, "                1.25", lines[6])

	assert.True(t, bytes.HasPrefix(doc.Bytes(), []byte{ESC, '@'}))
}

func TestWrapSplitsLongWords(t *testing.T) {
	assert.Equal(t, []string{"abcd", "ef"}, wrap("abcdef", 4))
	assert.Equal(t, []string{""}, wrap("   ", 4))
}
