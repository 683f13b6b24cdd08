package botan

//#include "common.h"
import "C"

// construct acquires a handle for an algorithm given by name. The name is
// passed to the library as is; whether it is known is decided there, and
// unknown names are reported as ErrNotImplemented.
func construct[T comparable](kind objectKind, name string, destroy func(T) C.int, create func(obj *T, name *C.char) C.int) (*handle[T], error) {
	cName, err := cString(name)
	if err != nil {
		return nil, err
	}
	defer freePtr(cName)
	h, err := acquire(kind, destroy, func(obj *T) C.int {
		return create(obj, cName)
	})
	if err != nil {
		if e, ok := err.(Error); ok {
			e.msg += " " + name
			return nil, e
		}
		return nil, err
	}
	return h, nil
}

// nameOf reads back the algorithm name of a live object.
func nameOf[T comparable](h *handle[T], fn func(obj T, out *C.char, outLen *C.size_t) C.int) (string, error) {
	obj, err := h.get()
	if err != nil {
		return "", err
	}
	return negotiateString("Error getting algorithm name", 32, func(out *C.char, outLen *C.size_t) C.int {
		return fn(obj, out, outLen)
	})
}

// KeySpec describes acceptable key lengths of a keyed algorithm.
type KeySpec struct {
	Minimum int // Minimal key length in bytes
	Maximum int // Maximal key length in bytes
	Modulo  int // Key length must be a multiple of Modulo
}

// IsValidKeyLength reports whether key of n bytes is acceptable.
func (ks KeySpec) IsValidKeyLength(n int) bool {
	if n < ks.Minimum || n > ks.Maximum {
		return false
	}
	return ks.Modulo <= 1 || n%ks.Modulo == 0
}

func (ks KeySpec) check(n int) error {
	if !ks.IsValidKeyLength(n) {
		return newError("Key length is not acceptable", CodeInvalidKeyLength, ErrInvalidKeyLength)
	}
	return nil
}

func keySpecOf[T comparable](h *handle[T], fn func(obj T, min, max, mod *C.size_t) C.int) (KeySpec, error) {
	var min, max, mod C.size_t
	if err := h.call("Error getting key spec", func(obj T) C.int {
		return fn(obj, &min, &max, &mod)
	}); err != nil {
		return KeySpec{}, err
	}
	return KeySpec{Minimum: int(min), Maximum: int(max), Modulo: int(mod)}, nil
}
