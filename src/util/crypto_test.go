package util

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("secret-key-12345")

func encryptCell(t *testing.T, key []byte, plain string) string {
	t.Helper()
	block, err := aes.NewCipher(key)
	require.NoError(t, err)

	n := aes.BlockSize - len(plain)%aes.BlockSize
	padded := append([]byte(plain), bytes.Repeat([]byte{byte(n)}, n)...)

	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out)
}

func TestDecryptCellRoundTrip(t *testing.T) {
	for _, plain := range []string{"ACC-0001", "a", "exactly 16 chars", "a longer product account value spanning blocks"} {
		enc := encryptCell(t, testKey, plain)
		assert.Equal(t, plain, DecryptCell(testKey, enc))
	}
}

func TestDecryptCellBadBase64(t *testing.T) {
	got := DecryptCell(testKey, "not-base64!!!")
	assert.True(t, strings.HasPrefix(got, "[ERROR:"))
}

func TestDecryptCellBadLength(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString([]byte("short"))
	got := DecryptCell(testKey, enc)
	assert.True(t, strings.HasPrefix(got, "[ERROR:"))
	assert.Contains(t, got, "block size")
}

func TestDecryptCellWrongKey(t *testing.T) {
	enc := encryptCell(t, testKey, "ACC-0001")
	got := DecryptCell([]byte("another-16b-key!"), enc)
	// Wrong key yields garbage; padding or UTF-8 validation catches it.
	assert.NotEqual(t, "ACC-0001", got)
}

func TestDecryptCellBadKeySize(t *testing.T) {
	got := DecryptCell([]byte("tooshort"), encryptCell(t, testKey, "x"))
	assert.True(t, strings.HasPrefix(got, "[ERROR:"))
}

func TestPKCS7Unpad(t *testing.T) {
	out, err := pkcs7Unpad(append([]byte("abc"), bytes.Repeat([]byte{13}, 13)...), aes.BlockSize)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	_, err = pkcs7Unpad([]byte("0123456789abcde\x00"), aes.BlockSize)
	assert.Error(t, err)

	_, err = pkcs7Unpad([]byte("0123456789abcd\x03\x03"), aes.BlockSize)
	assert.Error(t, err)
}
