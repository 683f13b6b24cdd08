package botan

//#include "common.h"
import "C"

// MAC encapsulates native message authentication code
type MAC struct {
	h       *handle[C.botan_mac_t]
	size    int
	keySpec KeySpec
	keyed   bool
}

func destroyMAC(obj C.botan_mac_t) C.int {
	return C.botan_mac_destroy(obj)
}

// NewMAC creates MAC object by algorithm name, e.g. "HMAC(SHA-384)" or
// "CMAC(AES-128)". Key must be set with SetKey before any data is written.
func NewMAC(name string) (_ *MAC, rErr error) {
	h, err := construct(kindMAC, name, destroyMAC, func(obj *C.botan_mac_t, name *C.char) C.int {
		return C.botan_mac_init(obj, name, 0)
	})
	if err != nil {
		return nil, err
	}
	res := &MAC{h: h}
	defer func() {
		if rErr != nil {
			res.Close()
		}
	}()
	var n C.size_t
	if err := h.call("Error getting MAC size", func(obj C.botan_mac_t) C.int {
		return C.botan_mac_output_length(obj, &n)
	}); err != nil {
		return nil, err
	}
	res.size = int(n)
	if res.keySpec, err = keySpecOf(h, func(obj C.botan_mac_t, min, max, mod *C.size_t) C.int {
		return C.botan_mac_get_keyspec(obj, min, max, mod)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Name returns algorithm name.
func (m *MAC) Name() (string, error) {
	return nameOf(m.h, func(obj C.botan_mac_t, out *C.char, outLen *C.size_t) C.int {
		return C.botan_mac_name(obj, out, outLen)
	})
}

// OutputLength returns tag length in bytes.
func (m *MAC) OutputLength() int {
	return m.size
}

// KeySpec returns acceptable key lengths.
func (m *MAC) KeySpec() KeySpec {
	return m.keySpec
}

// SetKey keys the MAC. Keys of unacceptable length fail with
// ErrInvalidKeyLength.
func (m *MAC) SetKey(key []byte) error {
	if err := m.keySpec.check(len(key)); err != nil {
		return err
	}
	if err := m.h.call("Error setting MAC key", func(obj C.botan_mac_t) C.int {
		return C.botan_mac_set_key(obj, bytesPtr(key), sizeT(len(key)))
	}); err != nil {
		return err
	}
	m.keyed = true
	return nil
}

func (m *MAC) checkKeyed() error {
	if !m.keyed {
		return newError("MAC key is not set", CodeKeyNotSet, ErrInvalidInput)
	}
	return nil
}

// Update feeds buf into MAC state.
func (m *MAC) Update(buf []byte) error {
	if err := m.checkKeyed(); err != nil {
		return err
	}
	return m.h.call("Error updating MAC", func(obj C.botan_mac_t) C.int {
		return C.botan_mac_update(obj, bytesPtr(buf), sizeT(len(buf)))
	})
}

// Write implements io.Writer.
func (m *MAC) Write(buf []byte) (int, error) {
	if err := m.Update(buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Final returns authentication tag of data written so far. The key is
// retained, so the object can be used for the next message right away.
func (m *MAC) Final() ([]byte, error) {
	if err := m.checkKeyed(); err != nil {
		return nil, err
	}
	obj, err := m.h.get()
	if err != nil {
		return nil, err
	}
	return fixedOutput("Error finalizing MAC", m.size, func(out *C.uint8_t) C.int {
		return C.botan_mac_final(obj, out)
	})
}

// Clear erases key and state.
func (m *MAC) Clear() error {
	if err := m.h.call("Error clearing MAC", func(obj C.botan_mac_t) C.int {
		return C.botan_mac_clear(obj)
	}); err != nil {
		return err
	}
	m.keyed = false
	return nil
}

// Copy is not supported for MACs by the library and fails with
// ErrNotImplemented.
func (m *MAC) Copy() (*MAC, error) {
	_, err := m.h.duplicate(nil)
	return nil, err
}

// Close releases MAC handle.
func (m *MAC) Close() error {
	if m == nil {
		return nil
	}
	m.h.release()
	return nil
}
