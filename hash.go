package botan

//#include "common.h"
import "C"

import (
	"hash"
)

// Hash encapsulates native hash function
type Hash struct {
	h         *handle[C.botan_hash_t]
	size      int
	blockSize int
}

var _ hash.Hash = (*Hash)(nil)

func destroyHash(obj C.botan_hash_t) C.int {
	return C.botan_hash_destroy(obj)
}

// NewHash creates hash function object by algorithm name, such as
// "SHA-256" or "BLAKE2b(256)". Unknown names yield ErrNotImplemented. The
// object must be released with Close.
func NewHash(name string) (_ *Hash, rErr error) {
	h, err := construct(kindHash, name, destroyHash, func(obj *C.botan_hash_t, name *C.char) C.int {
		return C.botan_hash_init(obj, name, 0)
	})
	if err != nil {
		return nil, err
	}
	res := &Hash{h: h}
	defer func() {
		if rErr != nil {
			res.Close()
		}
	}()
	var n C.size_t
	if err := h.call("Error getting hash size", func(obj C.botan_hash_t) C.int {
		return C.botan_hash_output_length(obj, &n)
	}); err != nil {
		return nil, err
	}
	res.size = int(n)
	if err := h.call("Error getting hash block size", func(obj C.botan_hash_t) C.int {
		return C.botan_hash_block_size(obj, &n)
	}); err != nil {
		return nil, err
	}
	res.blockSize = int(n)
	return res, nil
}

// Name returns algorithm name.
func (h *Hash) Name() (string, error) {
	return nameOf(h.h, func(obj C.botan_hash_t, out *C.char, outLen *C.size_t) C.int {
		return C.botan_hash_name(obj, out, outLen)
	})
}

// OutputLength returns digest length in bytes.
func (h *Hash) OutputLength() int {
	return h.size
}

// Size returns the number of bytes Sum will return.
func (h *Hash) Size() int {
	return h.size
}

// BlockSize returns the hash's underlying block size.
func (h *Hash) BlockSize() int {
	return h.blockSize
}

// Update feeds buf into hash state.
func (h *Hash) Update(buf []byte) error {
	return h.h.call("Error updating hash", func(obj C.botan_hash_t) C.int {
		return C.botan_hash_update(obj, bytesPtr(buf), sizeT(len(buf)))
	})
}

// Write implements io.Writer.
func (h *Hash) Write(buf []byte) (int, error) {
	if err := h.Update(buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Final returns digest of all data written so far and resets the hash to
// its initial state.
func (h *Hash) Final() ([]byte, error) {
	obj, err := h.h.get()
	if err != nil {
		return nil, err
	}
	return fixedOutput("Error finalizing hash", h.size, func(out *C.uint8_t) C.int {
		return C.botan_hash_final(obj, out)
	})
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state.
func (h *Hash) Sum(b []byte) []byte {
	dup, err := h.Copy()
	if err != nil {
		panic(err)
	}
	defer dup.Close()
	res, err := dup.Final()
	if err != nil {
		panic(err)
	}
	return append(b, res...)
}

// Clear resets hash to its initial state.
func (h *Hash) Clear() error {
	return h.h.call("Error clearing hash", func(obj C.botan_hash_t) C.int {
		return C.botan_hash_clear(obj)
	})
}

// Reset resets the Hash to its initial state.
func (h *Hash) Reset() {
	if err := h.Clear(); err != nil {
		panic(err)
	}
}

// Copy returns independent hash object with a copy of current state.
func (h *Hash) Copy() (*Hash, error) {
	dup, err := h.h.duplicate(func(dst *C.botan_hash_t, src C.botan_hash_t) C.int {
		return C.botan_hash_copy_state(dst, src)
	})
	if err != nil {
		return nil, err
	}
	return &Hash{h: dup, size: h.size, blockSize: h.blockSize}, nil
}

// Close releases hash handle.
func (h *Hash) Close() error {
	if h == nil {
		return nil
	}
	h.h.release()
	return nil
}
