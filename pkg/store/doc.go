// Package store provides field value stores for the URL picker. Memory keeps
// values in process; the redisstore subpackage persists them in Redis.
// Missing fields read back as the empty link value.
package store
