// Package storage defines the key-value contract the console document is persisted through.
package storage

import "context"

// KeyValue stores opaque string values by key. GetItem reports found=false for a missing key
// and reserves the error for backend faults.
type KeyValue interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}
