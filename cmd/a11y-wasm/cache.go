//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
	"time"
)

// localCache is the device cache of the panel, backed by window.localStorage.
// Entries never expire.
type localCache struct {
	storage js.Value
}

func newLocalCache() (c *localCache, err error) {
	defer recoverJS(&err)

	storage := js.Global().Get("localStorage")
	if storage.IsUndefined() || storage.IsNull() {
		return nil, errStorageUnavailable
	}

	return &localCache{storage: storage}, nil
}

func (c *localCache) Get(key string) (val []byte, err error) {
	defer recoverJS(&err)

	v := c.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}

	return []byte(v.String()), nil
}

func (c *localCache) Set(key string, val []byte, _ time.Duration) (err error) {
	defer recoverJS(&err)

	c.storage.Call("setItem", key, string(val))

	return nil
}

func (c *localCache) Delete(key string) (err error) {
	defer recoverJS(&err)

	c.storage.Call("removeItem", key)

	return nil
}

// recoverJS turns a JavaScript exception (quota exceeded, storage disabled
// by privacy settings) into an error.
func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if jsErr, ok := r.(js.Error); ok {
		*err = fmt.Errorf("%w: %s", errStorageUnavailable, jsErr.Error())
		return
	}

	panic(r)
}
