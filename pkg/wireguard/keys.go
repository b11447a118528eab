package wireguard

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// KeyGen implements ports.KeyGenerator.
type KeyGen struct{}

// GenerateKeyPair generates a WireGuard private/public key pair.
func (KeyGen) GenerateKeyPair() (privateKey, publicKey string, err error) {
	return GenerateKeyPair()
}

// GenerateKeyPair generates a WireGuard private/public key pair.
func GenerateKeyPair() (privateKey, publicKey string, err error) {
	var private [32]byte
	if _, err := rand.Read(private[:]); err != nil {
		return "", "", err
	}

	// Clamp the private key according to Curve25519 requirements
	private[0] &= 248
	private[31] &= 127
	private[31] |= 64

	var public [32]byte
	curve25519.ScalarBaseMult(&public, &private)

	privateKey = base64.StdEncoding.EncodeToString(private[:])
	publicKey = base64.StdEncoding.EncodeToString(public[:])
	return privateKey, publicKey, nil
}

// DerivePublicKey derives the public key from a base64 private key.
func DerivePublicKey(privateKey string) (string, error) {
	private, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", err
	}
	if len(private) != 32 {
		return "", fmt.Errorf("private key must be 32 bytes, got %d", len(private))
	}

	var privateArray, publicArray [32]byte
	copy(privateArray[:], private)
	curve25519.ScalarBaseMult(&publicArray, &privateArray)

	return base64.StdEncoding.EncodeToString(publicArray[:]), nil
}

// GeneratePresharedKey generates a WireGuard preshared key.
func GeneratePresharedKey() (string, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key[:]), nil
}
