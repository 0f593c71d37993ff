package dto

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Field is an optional patch value. Set reports whether the caller supplied the
// key at all; a Set field with a nil Value clears the stored column.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Value returns a Field that sets v.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a Field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// Apply returns the patched value, or current when the field was not supplied.
func (f Field[T]) Apply(current *T) *T {
	if !f.Set {
		return current
	}
	return f.Value
}

// SSHTunnelPatch represents a partial update of an SSH tunnel.
// Fields that are not Set keep their stored value.
type SSHTunnelPatch struct {
	ServerAddress      Field[string]
	ServerPort         Field[int]
	Username           Field[string]
	Password           Field[string]
	PrivateKey         Field[string]
	PrivateKeyPassword Field[string]
}

// Empty reports whether no field was supplied.
func (p SSHTunnelPatch) Empty() bool {
	return !p.ServerAddress.Set && !p.ServerPort.Set && !p.Username.Set &&
		!p.Password.Set && !p.PrivateKey.Set && !p.PrivateKeyPassword.Set
}

// SSHTunnelPatchFromMap builds a patch from a decoded JSON object such as
// {"server_address": "10.0.0.1", "server_port": 22, "password": null}.
// Unknown keys and values of the wrong type are rejected.
func SSHTunnelPatchFromMap(payload map[string]interface{}) (SSHTunnelPatch, error) {
	var p SSHTunnelPatch

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unknown []string
	for _, key := range keys {
		raw := payload[key]
		var err error
		switch key {
		case "server_address":
			p.ServerAddress, err = stringField(key, raw)
		case "server_port":
			p.ServerPort, err = intField(key, raw)
		case "username":
			p.Username, err = stringField(key, raw)
		case "password":
			p.Password, err = stringField(key, raw)
		case "private_key":
			p.PrivateKey, err = stringField(key, raw)
		case "private_key_password":
			p.PrivateKeyPassword, err = stringField(key, raw)
		default:
			unknown = append(unknown, key)
		}
		if err != nil {
			return SSHTunnelPatch{}, err
		}
	}
	if len(unknown) > 0 {
		return SSHTunnelPatch{}, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}
	return p, nil
}

func stringField(key string, raw interface{}) (Field[string], error) {
	switch v := raw.(type) {
	case nil:
		return Null[string](), nil
	case string:
		return Value(v), nil
	default:
		return Field[string]{}, fmt.Errorf("field %s must be a string, got %T", key, raw)
	}
}

func intField(key string, raw interface{}) (Field[int], error) {
	var n int64
	switch v := raw.(type) {
	case nil:
		return Null[int](), nil
	case int:
		n = int64(v)
	case int64:
		n = v
	case float64:
		// encoding/json decodes every number into float64
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
			return Field[int]{}, fmt.Errorf("field %s must be an integer, got %v", key, v)
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return Field[int]{}, fmt.Errorf("field %s must be an integer, got %s", key, v)
		}
		n = i
	default:
		return Field[int]{}, fmt.Errorf("field %s must be an integer, got %T", key, raw)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return Field[int]{}, fmt.Errorf("field %s must be an integer, got %d", key, n)
	}
	return Value(int(n)), nil
}
