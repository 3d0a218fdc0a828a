package stompframe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WellFormedConnect(t *testing.T) {
	in := "CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00"
	f, err := Parse([]byte(in))
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, CommandConnect, f.Command)
	assert.Equal(t, "Frame body", string(f.Body))
	v, ok := f.Header(HeaderAcceptVersion)
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestParse_InvalidCommand(t *testing.T) {
	in := "CONNECTO\naccept-version:42\nhost:host.com\n\nFrame body\x00"
	f, err := Parse([]byte(in))
	assert.Nil(t, f)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCommand))
}

func TestParse_InvalidHeaderKey(t *testing.T) {
	in := "CONNECT\naccept-versioning:42\nhost:host.com\n\nFrame body\x00"
	_, err := Parse([]byte(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHeaderKey))
}

func TestParse_ContentLengthMismatch(t *testing.T) {
	in := "CONNECT\naccept-version:42\nhost:host.com\ncontent-length:10\n\nFrame body11\x00"
	_, err := Parse([]byte(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentLengthMismatch))
}

func TestParse_JunkAfterBody(t *testing.T) {
	in := "CONNECT\naccept-version:42\nhost:host.com\n\nFrame body\x00abc"
	_, err := Parse([]byte(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJunkAfterBody))
}

func TestParse_MissingEolAfterCommand(t *testing.T) {
	_, err := Parse([]byte("CONNECT"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEolAfterCommand))
}

func TestParse_InvalidHeaderFormat(t *testing.T) {
	_, err := Parse([]byte("CONNECT\nbadheader\n\n\x00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHeaderFormat))
}

func TestParse_InvalidEmptyKeyHeader(t *testing.T) {
	_, err := Parse([]byte("CONNECT\n:value\n\n\x00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEmptyKeyHeader))
}

func TestParse_InvalidEmptyValueHeader(t *testing.T) {
	_, err := Parse([]byte("CONNECT\nhost:\n\n\x00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEmptyValueHeader))
}

func TestParse_MissingBlankLineAfterHeaders(t *testing.T) {
	_, err := Parse([]byte("CONNECT\nhost:a\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBlankLineAfterHeaders))
}

func TestParse_MissingNullAtEndOfBody(t *testing.T) {
	_, err := Parse([]byte("ERROR\n\nbody without nul"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingNullAtEndOfBody))
}

func TestParse_InvalidContentLengthValueType(t *testing.T) {
	in := "ERROR\ncontent-length:abc\n\nbody\x00"
	_, err := Parse([]byte(in))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidContentLengthValueType))
}

func TestParse_DuplicateHeaderFirstWins(t *testing.T) {
	in := "ERROR\nmessage:first\nmessage:second\n\n\x00"
	f, err := Parse([]byte(in))
	require.NoError(t, err)
	v, ok := f.Header(HeaderMessage)
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestParse_ContentLengthBodyMayContainNul(t *testing.T) {
	in := "ERROR\ncontent-length:3\n\na\x00b\x00"
	f, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, "a\x00b", string(f.Body))
}

func TestParse_RequiredHeaderMatrix(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"connect missing host", "CONNECT\naccept-version:1.2\n\n\x00", true},
		{"connect ok", "CONNECT\naccept-version:1.2\nhost:h\n\n\x00", false},
		{"connected missing version", "CONNECTED\n\n\x00", true},
		{"connected ok", "CONNECTED\nversion:1.2\n\n\x00", false},
		{"send missing destination", "SEND\n\n\x00", true},
		{"send ok", "SEND\ndestination:/q\n\n\x00", false},
		{"subscribe missing id", "SUBSCRIBE\ndestination:/q\n\n\x00", true},
		{"subscribe ok", "SUBSCRIBE\ndestination:/q\nid:1\n\n\x00", false},
		{"unsubscribe missing id", "UNSUBSCRIBE\n\n\x00", true},
		{"ack missing id", "ACK\n\n\x00", true},
		{"nack missing id", "NACK\n\n\x00", true},
		{"begin missing transaction", "BEGIN\n\n\x00", true},
		{"commit missing transaction", "COMMIT\n\n\x00", true},
		{"abort missing transaction", "ABORT\n\n\x00", true},
		{"message missing headers", "MESSAGE\ndestination:/q\n\n\x00", true},
		{"message ok", "MESSAGE\ndestination:/q\nmessage-id:1\nsubscription:0\n\n\x00", false},
		{"error no required headers", "ERROR\n\n\x00", false},
		{"receipt no required headers", "RECEIPT\n\n\x00", false},
		{"disconnect no required headers", "DISCONNECT\n\n\x00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMissingRequiredHeaders))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	in := "SEND\ndestination:/q\ncontent-type:text/plain\ncontent-length:5\n\nhello\x00"
	f, err := Parse([]byte(in))
	require.NoError(t, err)

	out, err := Serialize(f)
	require.NoError(t, err)

	f2, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, f.Command, f2.Command)
	assert.Equal(t, f.Headers(), f2.Headers())
	assert.Equal(t, f.Body, f2.Body)
}
