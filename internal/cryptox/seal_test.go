package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	t.Parallel()

	key := DeriveStorageKey([]byte("device-secret"), []byte("salt-0123456789"))
	plaintext := []byte("refresh-token-value")

	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ciphertext)

	got, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpen_WrongKey(t *testing.T) {
	t.Parallel()

	key := DeriveStorageKey([]byte("device-secret"), []byte("salt-0123456789"))
	other := DeriveStorageKey([]byte("other-secret"), []byte("salt-0123456789"))

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, other)
	require.Error(t, err)
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	t.Parallel()

	key := DeriveStorageKey([]byte("device-secret"), []byte("salt-0123456789"))

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Open(ciphertext, nonce, key)
	require.Error(t, err)
}

func TestDeriveStorageKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := DeriveStorageKey([]byte("s"), []byte("salt"))
	b := DeriveStorageKey([]byte("s"), []byte("salt"))
	c := DeriveStorageKey([]byte("s"), []byte("tlas"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
