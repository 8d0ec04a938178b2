package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren02/billdesk/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Customer;Amount;Status\nSéverine Müller;45.00;pending\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := "Customer;Amount;Status\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Séverine" in Windows-1252: é = 0xE9.
	input := []byte{'S', 0xE9, 'v', 'e', 'r', 'i', 'n', 'e', ';', '1', '0', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Séverine;10\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	content := "Customer\n"

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})

	for _, r := range content {
		buf.WriteByte(byte(r))
		buf.WriteByte(0)
	}

	r, err := encoding.NewUTF8Reader(&buf)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}
