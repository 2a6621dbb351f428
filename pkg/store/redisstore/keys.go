package redisstore

import (
	"fmt"
	"strings"
)

const (
	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "urlpicker"

	hashURL    = "url"
	hashAnchor = "anchor"
	hashBlank  = "blank"
)

// FieldKey returns the hash key holding a field value.
func FieldKey(prefix, fieldID string) string {
	return normalizePrefix(prefix) + ":field:" + fieldID
}

// FieldsKey returns the set listing every field with a stored value.
func FieldsKey(prefix string) string {
	return normalizePrefix(prefix) + ":fields"
}

// ExtractFieldID returns the field identifier encoded in a FieldKey.
func ExtractFieldID(prefix, key string) (string, error) {
	head := normalizePrefix(prefix) + ":field:"
	if len(key) <= len(head) || !strings.HasPrefix(key, head) {
		return "", fmt.Errorf("redisstore: invalid field key: %s", key)
	}
	return key[len(head):], nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return DefaultPrefix
	}
	return prefix
}
