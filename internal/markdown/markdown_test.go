package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert_Basic(t *testing.T) {
	c := New(Options{})
	out, err := c.Convert([]byte("# Title\n\nSome *emphasis*.\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Title</h1>")
	require.Contains(t, string(out), "<em>emphasis</em>")
}

func TestConvert_HeadingIDs(t *testing.T) {
	out, err := New(Options{HeadingIDs: true}).Convert([]byte("## Opening Hours\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), `<h2 id="opening-hours">Opening Hours</h2>`)
}

func TestConvert_RawHTMLRequiresUnsafe(t *testing.T) {
	src := []byte("<div class=\"note\">hi</div>\n")

	safe, err := New(Options{}).Convert(src)
	require.NoError(t, err)
	require.NotContains(t, string(safe), `<div class="note">`)

	unsafe, err := New(Options{UnsafeHTML: true}).Convert(src)
	require.NoError(t, err)
	require.Contains(t, string(unsafe), `<div class="note">hi</div>`)
}

func TestConvert_TableExtension(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	plain, err := New(Options{}).Convert(src)
	require.NoError(t, err)
	require.NotContains(t, string(plain), "<table>")

	withTable, err := New(Options{Extensions: []string{"Table", "bogus"}}).Convert(src)
	require.NoError(t, err)
	require.Contains(t, string(withTable), "<table>")
}

func TestConvert_HardWraps(t *testing.T) {
	out, err := New(Options{HardWraps: true}).Convert([]byte("one\ntwo\n"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<br>")
}

func TestKnownExtension(t *testing.T) {
	require.True(t, KnownExtension("gfm"))
	require.True(t, KnownExtension(" Footnote "))
	require.False(t, KnownExtension("mermaid"))
}
