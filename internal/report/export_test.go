package report

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArtifactEmptyPayloadIsDomainCondition(t *testing.T) {
	for _, payload := range []string{"", "   "} {
		_, err := DecodeArtifact(payload)
		var dom *DomainError
		require.ErrorAs(t, err, &dom, "payload %q", payload)
		assert.Equal(t, NoMovementsMessage, dom.Reason)
	}
}

func TestDecodeArtifactExactBytes(t *testing.T) {
	// "AAAA" is four base64 chars with no padding: exactly 3 zero bytes.
	data, err := DecodeArtifact("AAAA")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, data)
}

func TestDecodeArtifactStripsDataURIPrefix(t *testing.T) {
	data, err := DecodeArtifact("data:application/pdf;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, data)
}

func TestDecodeArtifactRoundTrip(t *testing.T) {
	original := []byte("%PDF-1.4 fake document body")
	encoded := base64.StdEncoding.EncodeToString(original)

	decoded, err := DecodeArtifact(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
	assert.Equal(t, encoded, base64.StdEncoding.EncodeToString(decoded))
}

func TestDecodeArtifactRejectsBadBase64(t *testing.T) {
	_, err := DecodeArtifact("not base64 at all!!!")
	require.Error(t, err)
	var dom *DomainError
	assert.False(t, errors.As(err, &dom), "decode failure must not read as a domain condition")
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	payload := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 body"))
	path, err := e.Export(payload, "statement_478758_2026-01-10_to_2026-01-10.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "statement_478758_2026-01-10_to_2026-01-10.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 body"), data)
}

func TestExportOverwritesSameRange(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)
	name := "statement_478758_2026-01-10_to_2026-01-10.pdf"

	first := base64.StdEncoding.EncodeToString([]byte("first"))
	second := base64.StdEncoding.EncodeToString([]byte("second"))

	_, err := e.Export(first, name)
	require.NoError(t, err)
	path, err := e.Export(second, name)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp handles must be released, not accumulated")
}

func TestExportReleasesTempHandleOnDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	_, err := e.Export("%%%not-base64%%%", "broken.pdf")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportEmptyPayloadWritesNothing(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, nil)

	_, err := e.Export("", "statement.pdf")
	var dom *DomainError
	require.ErrorAs(t, err, &dom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
