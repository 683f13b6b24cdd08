package botan

//#include "common.h"
import "C"

import (
	"crypto/cipher"
)

// BlockCipher encapsulates raw block cipher. It transforms whole blocks
// without any mode of operation.
type BlockCipher struct {
	h         *handle[C.botan_block_cipher_t]
	blockSize int
	keySpec   KeySpec
	keyed     bool
}

var _ cipher.Block = (*BlockCipher)(nil)

func destroyBlockCipher(obj C.botan_block_cipher_t) C.int {
	return C.botan_block_cipher_destroy(obj)
}

// NewBlockCipher creates block cipher by name, such as "AES-128" or
// "Serpent".
func NewBlockCipher(name string) (_ *BlockCipher, rErr error) {
	h, err := construct(kindBlockCipher, name, destroyBlockCipher, func(obj *C.botan_block_cipher_t, name *C.char) C.int {
		return C.botan_block_cipher_init(obj, name)
	})
	if err != nil {
		return nil, err
	}
	res := &BlockCipher{h: h}
	defer func() {
		if rErr != nil {
			res.Close()
		}
	}()
	obj, err := h.get()
	if err != nil {
		return nil, err
	}
	// block size is returned in place of status code
	rc := C.botan_block_cipher_block_size(obj)
	if rc <= 0 {
		return nil, getErr("Error getting cipher block size", rc)
	}
	res.blockSize = int(rc)
	if res.keySpec, err = keySpecOf(h, func(obj C.botan_block_cipher_t, min, max, mod *C.size_t) C.int {
		return C.botan_block_cipher_get_keyspec(obj, min, max, mod)
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Name returns algorithm name.
func (bc *BlockCipher) Name() (string, error) {
	return nameOf(bc.h, func(obj C.botan_block_cipher_t, out *C.char, outLen *C.size_t) C.int {
		return C.botan_block_cipher_name(obj, out, outLen)
	})
}

// BlockSize returns cipher block size in bytes.
func (bc *BlockCipher) BlockSize() int {
	return bc.blockSize
}

// KeySpec returns acceptable key lengths.
func (bc *BlockCipher) KeySpec() KeySpec {
	return bc.keySpec
}

// SetKey keys the cipher.
func (bc *BlockCipher) SetKey(key []byte) error {
	if err := bc.keySpec.check(len(key)); err != nil {
		return err
	}
	if err := bc.h.call("Error setting block cipher key", func(obj C.botan_block_cipher_t) C.int {
		return C.botan_block_cipher_set_key(obj, bytesPtr(key), sizeT(len(key)))
	}); err != nil {
		return err
	}
	bc.keyed = true
	return nil
}

type blockFunc func(obj C.botan_block_cipher_t, in, out *C.uint8_t, blocks C.size_t) C.int

func (bc *BlockCipher) transform(msg string, dst, src []byte, fn blockFunc) error {
	if !bc.keyed {
		return newError(msg+": key is not set", CodeKeyNotSet, ErrInvalidInput)
	}
	if len(src)%bc.blockSize != 0 {
		return newError(msg+": input is not a multiple of block size", CodeInvalidInput, ErrInvalidInput)
	}
	if len(dst) < len(src) {
		return newError(msg+": output is shorter than input", CodeInsufficientBufferSpace, ErrInsufficientBufferSpace)
	}
	if len(src) == 0 {
		return nil
	}
	return bc.h.call(msg, func(obj C.botan_block_cipher_t) C.int {
		return fn(obj, bytesPtr(src), bytesPtr(dst), sizeT(len(src)/bc.blockSize))
	})
}

func encryptBlocks(obj C.botan_block_cipher_t, in, out *C.uint8_t, blocks C.size_t) C.int {
	return C.botan_block_cipher_encrypt_blocks(obj, in, out, blocks)
}

func decryptBlocks(obj C.botan_block_cipher_t, in, out *C.uint8_t, blocks C.size_t) C.int {
	return C.botan_block_cipher_decrypt_blocks(obj, in, out, blocks)
}

// EncryptBlocks encrypts src, which must consist of whole blocks.
func (bc *BlockCipher) EncryptBlocks(src []byte) ([]byte, error) {
	res := make([]byte, len(src))
	if err := bc.transform("Error encrypting blocks", res, src, encryptBlocks); err != nil {
		return nil, err
	}
	return res, nil
}

// DecryptBlocks decrypts src, which must consist of whole blocks.
func (bc *BlockCipher) DecryptBlocks(src []byte) ([]byte, error) {
	res := make([]byte, len(src))
	if err := bc.transform("Error decrypting blocks", res, src, decryptBlocks); err != nil {
		return nil, err
	}
	return res, nil
}

// Encrypt encrypts the first block in src into dst. It panics on failure
// as required by cipher.Block.
func (bc *BlockCipher) Encrypt(dst, src []byte) {
	if len(src) < bc.blockSize {
		panic("botan: input not full block")
	}
	if err := bc.transform("Error encrypting block", dst, src[:bc.blockSize], encryptBlocks); err != nil {
		panic(err)
	}
}

// Decrypt decrypts the first block in src into dst. It panics on failure
// as required by cipher.Block.
func (bc *BlockCipher) Decrypt(dst, src []byte) {
	if len(src) < bc.blockSize {
		panic("botan: input not full block")
	}
	if err := bc.transform("Error decrypting block", dst, src[:bc.blockSize], decryptBlocks); err != nil {
		panic(err)
	}
}

// Clear erases key.
func (bc *BlockCipher) Clear() error {
	if err := bc.h.call("Error clearing block cipher", func(obj C.botan_block_cipher_t) C.int {
		return C.botan_block_cipher_clear(obj)
	}); err != nil {
		return err
	}
	bc.keyed = false
	return nil
}

// Close releases block cipher handle.
func (bc *BlockCipher) Close() error {
	if bc == nil {
		return nil
	}
	bc.h.release()
	return nil
}
