package sshtunnel

import (
	"errors"
	"strings"

	"sshtunnelapi/models"
	"sshtunnelapi/services/dto"

	"golang.org/x/crypto/ssh"
)

// Merge applies patch over existing and enforces single-method authentication:
// a new private key clears the password, a new password clears the key pair.
// The key takes precedence when a patch supplies both.
func Merge(existing models.SSHTunnel, patch dto.SSHTunnelPatch) models.SSHTunnel {
	merged := existing
	if patch.ServerAddress.Set {
		merged.ServerAddress = deref(patch.ServerAddress.Value)
	}
	if patch.Username.Set {
		merged.Username = deref(patch.Username.Value)
	}
	merged.ServerPort = patch.ServerPort.Apply(existing.ServerPort)
	merged.Password = patch.Password.Apply(existing.Password)
	merged.PrivateKey = patch.PrivateKey.Apply(existing.PrivateKey)
	merged.PrivateKeyPassword = patch.PrivateKeyPassword.Apply(existing.PrivateKeyPassword)

	if isSet(patch.PrivateKey.Value) {
		merged.Password = nil
	} else if isSet(patch.Password.Value) {
		merged.PrivateKey = nil
		merged.PrivateKeyPassword = nil
	}
	return merged
}

// Validate merges patch over existing and checks the result against the tunnel
// rules. It has no side effects. connectionString is the owning database's URI,
// used to resolve a port when none is set on the tunnel.
func Validate(existing models.SSHTunnel, patch dto.SSHTunnelPatch, connectionString string) (models.SSHTunnel, error) {
	// A key password in the payload must arrive with its key.
	if isSet(patch.PrivateKeyPassword.Value) && !isSet(patch.PrivateKey.Value) {
		return models.SSHTunnel{}, invalid("private_key", "required when private_key_password is set")
	}

	merged := Merge(existing, patch)

	if isSet(merged.PrivateKeyPassword) && !isSet(merged.PrivateKey) {
		return models.SSHTunnel{}, invalid("private_key", "required when private_key_password is set")
	}

	// Stored keys were checked when written; only re-parse when the key material changes.
	if (patch.PrivateKey.Set || patch.PrivateKeyPassword.Set) && isSet(merged.PrivateKey) {
		if err := checkPrivateKey(*merged.PrivateKey, deref(merged.PrivateKeyPassword)); err != nil {
			return models.SSHTunnel{}, err
		}
	}

	if strings.TrimSpace(merged.ServerAddress) == "" {
		return models.SSHTunnel{}, invalid("server_address", "must not be empty")
	}

	port, err := ResolvePort(merged, connectionString)
	if err != nil {
		return models.SSHTunnel{}, err
	}
	merged.ServerPort = &port

	return merged, nil
}

// ResolvePort returns the tunnel's explicit port or, when unset, the port of
// the owning database's connection string.
func ResolvePort(tunnel models.SSHTunnel, connectionString string) (int, error) {
	if tunnel.ServerPort != nil {
		if *tunnel.ServerPort <= 0 || *tunnel.ServerPort > 65535 {
			return 0, invalid("server_port", "must be between 1 and 65535")
		}
		return *tunnel.ServerPort, nil
	}
	return ConnectionPort(connectionString)
}

func checkPrivateKey(key, passphrase string) error {
	_, err := ssh.ParseRawPrivateKey([]byte(key))
	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if passphrase == "" {
			return invalid("private_key_password", "required to decrypt private_key")
		}
		_, err = ssh.ParseRawPrivateKeyWithPassphrase([]byte(key), []byte(passphrase))
	}
	if err != nil {
		return invalid("private_key", err.Error())
	}
	return nil
}

func isSet(v *string) bool {
	return v != nil && *v != ""
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
