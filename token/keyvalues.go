/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"bytes"
	"encoding/json"
	"iter"
)

// KeyValues is an ordered mapping from key to token list.
//
// Setting an existing key replaces its value but keeps its place in the
// order.
type KeyValues struct {
	keys   []string
	values map[string]List
}

// NewKeyValues creates an empty mapping.
func NewKeyValues() *KeyValues {
	return &KeyValues{values: make(map[string]List)}
}

// Set stores value under key.
func (kv *KeyValues) Set(key string, value List) {
	if _, exists := kv.values[key]; !exists {
		kv.keys = append(kv.keys, key)
	}
	kv.values[key] = value
}

// Get returns the value stored under key.
func (kv *KeyValues) Get(key string) (List, bool) {
	v, ok := kv.values[key]
	return v, ok
}

// Keys returns the keys in first-insertion order.
func (kv *KeyValues) Keys() []string {
	return append([]string(nil), kv.keys...)
}

// Len returns the number of keys.
func (kv *KeyValues) Len() int {
	return len(kv.keys)
}

// All iterates over the pairs in order.
func (kv *KeyValues) All() iter.Seq2[string, List] {
	return func(yield func(string, List) bool) {
		for _, k := range kv.keys {
			if !yield(k, kv.values[k]) {
				return
			}
		}
	}
}

// Strings returns each value rendered as source text.
func (kv *KeyValues) Strings() map[string]string {
	result := make(map[string]string, len(kv.keys))
	for k, v := range kv.All() {
		result[k] = v.FormatText()
	}
	return result
}

// MarshalJSON renders the mapping as a JSON object in key order, with each
// value as its source text.
func (kv *KeyValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range kv.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv.values[k].FormatText())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
