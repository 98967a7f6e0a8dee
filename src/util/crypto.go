package util

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// DecryptCell decrypts one base64-encoded AES-ECB cell value and strips the
// PKCS7 padding. On any failure it returns an inline "[ERROR: ...]" string
// instead of an error, so one bad cell does not abort rendering the rest of
// a result set.
func DecryptCell(key []byte, value string) string {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return errString(err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return errString(err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return errString(errors.New("ciphertext is not a multiple of the block size"))
	}

	plain := make([]byte, len(raw))
	for i := 0; i < len(raw); i += aes.BlockSize {
		block.Decrypt(plain[i:i+aes.BlockSize], raw[i:i+aes.BlockSize])
	}

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return errString(err)
	}
	if !utf8.Valid(plain) {
		return errString(errors.New("decrypted value is not valid UTF-8"))
	}
	return string(plain)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding")
	}
	if !bytes.Equal(data[len(data)-n:], bytes.Repeat([]byte{byte(n)}, n)) {
		return nil, errors.New("invalid padding")
	}
	return data[:len(data)-n], nil
}

func errString(err error) string {
	return fmt.Sprintf("[ERROR: %v]", err)
}
