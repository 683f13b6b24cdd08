package botan

//#include "common.h"
import "C"

// Direction selects whether cipher encrypts or decrypts
type Direction uint32

// Cipher directions
const (
	Encrypt Direction = 0
	Decrypt Direction = 1
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

const cipherUpdateFinal = 1

// Cipher encapsulates a cipher mode, stream cipher or AEAD bound to one
// direction. A message is processed either with Process or with a Start,
// Update..., Finish sequence.
type Cipher struct {
	h           *handle[C.botan_cipher_t]
	dir         Direction
	tagLength   int
	nonceLength int
	granularity int
	keySpec     KeySpec
	keyed       bool
	started     bool
	pending     []byte
}

func destroyCipher(obj C.botan_cipher_t) C.int {
	return C.botan_cipher_destroy(obj)
}

// NewCipher creates cipher by name, for example "AES-128/GCM",
// "AES-256/CBC/PKCS7" or "ChaCha20".
func NewCipher(name string, dir Direction) (_ *Cipher, rErr error) {
	h, err := construct(kindCipher, name, destroyCipher, func(obj *C.botan_cipher_t, name *C.char) C.int {
		return C.botan_cipher_init(obj, name, C.uint32_t(dir))
	})
	if err != nil {
		return nil, err
	}
	res := &Cipher{h: h, dir: dir}
	defer func() {
		if rErr != nil {
			res.Close()
		}
	}()
	var tag, nonce, ug C.size_t
	if err := h.call("Error getting cipher parameters", func(obj C.botan_cipher_t) C.int {
		if rc := C.botan_cipher_get_tag_length(obj, &tag); rc != 0 {
			return rc
		}
		if rc := C.botan_cipher_get_default_nonce_length(obj, &nonce); rc != 0 {
			return rc
		}
		return C.botan_cipher_get_update_granularity(obj, &ug)
	}); err != nil {
		return nil, err
	}
	res.tagLength, res.nonceLength, res.granularity = int(tag), int(nonce), int(ug)
	if res.granularity < 1 {
		res.granularity = 1
	}
	if res.keySpec, err = keySpecOf(h, func(obj C.botan_cipher_t, min, max, mod *C.size_t) C.int {
		return C.botan_cipher_get_keyspec(obj, min, max, mod)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Name returns algorithm name.
func (c *Cipher) Name() (string, error) {
	return nameOf(c.h, func(obj C.botan_cipher_t, out *C.char, outLen *C.size_t) C.int {
		return C.botan_cipher_name(obj, out, outLen)
	})
}

// Direction returns cipher direction.
func (c *Cipher) Direction() Direction {
	return c.dir
}

// TagLength returns authentication tag length, zero for non-AEAD ciphers.
func (c *Cipher) TagLength() int {
	return c.tagLength
}

// DefaultNonceLength returns recommended nonce length.
func (c *Cipher) DefaultNonceLength() int {
	return c.nonceLength
}

// UpdateGranularity returns the size Update input is processed in.
func (c *Cipher) UpdateGranularity() int {
	return c.granularity
}

// ValidNonceLength reports whether nonce of n bytes is accepted.
func (c *Cipher) ValidNonceLength(n int) (bool, error) {
	if n < 0 {
		return false, nil
	}
	obj, err := c.h.get()
	if err != nil {
		return false, err
	}
	rc := C.botan_cipher_valid_nonce_length(obj, sizeT(n))
	if rc < 0 {
		return false, getErr("Error checking nonce length", rc)
	}
	return rc == 1, nil
}

// KeySpec returns acceptable key lengths.
func (c *Cipher) KeySpec() KeySpec {
	return c.keySpec
}

// SetKey keys the cipher.
func (c *Cipher) SetKey(key []byte) error {
	if err := c.keySpec.check(len(key)); err != nil {
		return err
	}
	if err := c.h.call("Error setting cipher key", func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_set_key(obj, bytesPtr(key), sizeT(len(key)))
	}); err != nil {
		return err
	}
	c.keyed = true
	return nil
}

func (c *Cipher) checkKeyed(msg string) error {
	if !c.keyed {
		return newError(msg+": key is not set", CodeKeyNotSet, ErrInvalidInput)
	}
	return nil
}

// SetAssociatedData sets data authenticated along with the next message.
// It is only valid for AEAD ciphers after the key is set.
func (c *Cipher) SetAssociatedData(ad []byte) error {
	if err := c.checkKeyed("Error setting associated data"); err != nil {
		return err
	}
	return c.h.call("Error setting associated data", func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_set_associated_data(obj, bytesPtr(ad), sizeT(len(ad)))
	})
}

// Start begins a new message with given nonce.
func (c *Cipher) Start(nonce []byte) error {
	if err := c.checkKeyed("Error starting cipher"); err != nil {
		return err
	}
	if err := c.h.call("Error starting cipher", func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_start(obj, bytesPtr(nonce), sizeT(len(nonce)))
	}); err != nil {
		return err
	}
	c.started = true
	c.pending = c.pending[:0]
	return nil
}

func (c *Cipher) update(msg string, flags C.uint32_t, out, in []byte) (written, consumed int, err error) {
	var w, n C.size_t
	err = c.h.call(msg, func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_update(obj, flags,
			bytesPtr(out), sizeT(len(out)), &w,
			bytesPtr(in), sizeT(len(in)), &n)
	})
	return int(w), int(n), err
}

// Update processes as much of the buffered input as the mode allows and
// returns the produced output. Input that can not be processed yet is
// kept until the next Update or Finish. When decrypting, the last tag and
// block are always held back for Finish.
func (c *Cipher) Update(in []byte) ([]byte, error) {
	if !c.started {
		return nil, newError("Error updating cipher: message is not started", CodeInvalidObjectState, ErrInvalidInput)
	}
	c.pending = append(c.pending, in...)
	avail := len(c.pending)
	if c.dir == Decrypt {
		avail -= c.tagLength + c.granularity
	}
	avail -= avail % c.granularity
	if avail <= 0 {
		return []byte{}, nil
	}
	out := make([]byte, avail)
	written, consumed, err := c.update("Error updating cipher", 0, out, c.pending[:avail])
	if err != nil {
		return nil, err
	}
	c.pending = append(c.pending[:0], c.pending[consumed:]...)
	return out[:written], nil
}

// Finish processes buffered and final input and completes the message.
// For AEAD decryption a tag mismatch fails with ErrBadMAC.
func (c *Cipher) Finish(in []byte) ([]byte, error) {
	if !c.started {
		return nil, newError("Error finishing cipher: message is not started", CodeInvalidObjectState, ErrInvalidInput)
	}
	c.started = false
	data := append(c.pending, in...)
	c.pending = c.pending[:0]
	size, err := c.finalLength(len(data))
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	written, _, err := c.update("Error finishing cipher", cipherUpdateFinal, out, data)
	if err != nil {
		return nil, err
	}
	return out[:written], nil
}

// finalLength bounds the output of the final update over n bytes. Padding
// modes may add up to one block, which the tag and granularity allowance
// covers when the library estimate does not.
func (c *Cipher) finalLength(n int) (int, error) {
	var estimate C.size_t
	if err := c.h.call("Error getting cipher output length", func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_output_length(obj, sizeT(n), &estimate)
	}); err != nil {
		return 0, err
	}
	size := n + c.tagLength + c.granularity
	if int(estimate) > size {
		size = int(estimate)
	}
	return size, nil
}

// Process transforms complete message in with nonce in one call.
func (c *Cipher) Process(nonce, in []byte) ([]byte, error) {
	if err := c.Start(nonce); err != nil {
		return nil, err
	}
	return c.Finish(in)
}

// Clear erases key and state.
func (c *Cipher) Clear() error {
	if err := c.h.call("Error clearing cipher", func(obj C.botan_cipher_t) C.int {
		return C.botan_cipher_clear(obj)
	}); err != nil {
		return err
	}
	c.keyed, c.started = false, false
	c.pending = nil
	return nil
}

// Close releases cipher handle.
func (c *Cipher) Close() error {
	if c == nil {
		return nil
	}
	c.h.release()
	return nil
}
