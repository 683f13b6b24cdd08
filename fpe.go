package botan

//#include "common.h"
import "C"

const fpeCompatMode C.uint32_t = 1

// FPE performs format preserving encryption of integers below a modulus
// with the FE1 scheme.
type FPE struct {
	h *handle[C.botan_fpe_t]
}

func destroyFPE(obj C.botan_fpe_t) C.int {
	return C.botan_fpe_destroy(obj)
}

// NewFPEFE1 creates FE1 instance over integers in [0, modulus). Compat
// selects the variant compatible with library versions before 2.5.
func NewFPEFE1(modulus *MPI, key []byte, rounds int, compat bool) (*FPE, error) {
	n, err := modulus.obj()
	if err != nil {
		return nil, err
	}
	var flags C.uint32_t
	if compat {
		flags = fpeCompatMode
	}
	h, err := acquire(kindFPE, destroyFPE, func(obj *C.botan_fpe_t) C.int {
		return C.botan_fpe_fe1_init(obj, n, bytesPtr(key), sizeT(len(key)), sizeT(rounds), flags)
	})
	if err != nil {
		return nil, err
	}
	return &FPE{h: h}, nil
}

type fpeFunc func(obj C.botan_fpe_t, x C.botan_mp_t, tweak *C.uint8_t, tweakLen C.size_t) C.int

func (f *FPE) transform(msg string, x *MPI, tweak []byte, fn fpeFunc) (*MPI, error) {
	obj, err := f.h.get()
	if err != nil {
		return nil, err
	}
	res, err := x.Copy()
	if err != nil {
		return nil, err
	}
	if err := res.call(msg, func(mp C.botan_mp_t) C.int {
		return fn(obj, mp, bytesPtr(tweak), sizeT(len(tweak)))
	}); err != nil {
		res.Close()
		return nil, err
	}
	return res, nil
}

// Encrypt returns encryption of x under tweak. The argument is not
// modified.
func (f *FPE) Encrypt(x *MPI, tweak []byte) (*MPI, error) {
	return f.transform("Error encrypting with FPE", x, tweak, func(obj C.botan_fpe_t, x C.botan_mp_t, tweak *C.uint8_t, tweakLen C.size_t) C.int {
		return C.botan_fpe_encrypt(obj, x, tweak, tweakLen)
	})
}

// Decrypt returns decryption of x under tweak.
func (f *FPE) Decrypt(x *MPI, tweak []byte) (*MPI, error) {
	return f.transform("Error decrypting with FPE", x, tweak, func(obj C.botan_fpe_t, x C.botan_mp_t, tweak *C.uint8_t, tweakLen C.size_t) C.int {
		return C.botan_fpe_decrypt(obj, x, tweak, tweakLen)
	})
}

// Close releases FPE handle.
func (f *FPE) Close() error {
	if f == nil {
		return nil
	}
	f.h.release()
	return nil
}
