package botan

//#include "common.h"
import "C"

import (
	"io"
	"sync"
)

// RNGKind selects random number generator implementation
type RNGKind string

// Random number generators provided by the library
const (
	RNGSystem         RNGKind = "system"          // Operating system entropy source
	RNGUser           RNGKind = "user"            // Userspace generator seeded from system
	RNGUserThreadsafe RNGKind = "user-threadsafe" // Userspace generator with internal lock
	RNGRdrand         RNGKind = "rdrand"          // CPU RDRAND instruction
)

// RNG encapsulates native random number generator
type RNG struct {
	h *handle[C.botan_rng_t]
}

var _ io.Reader = (*RNG)(nil)

func destroyRNG(obj C.botan_rng_t) C.int {
	return C.botan_rng_destroy(obj)
}

// NewRNG creates random number generator of given kind. It must be
// released with Close.
func NewRNG(kind RNGKind) (*RNG, error) {
	h, err := construct(kindRNG, string(kind), destroyRNG, func(obj *C.botan_rng_t, name *C.char) C.int {
		return C.botan_rng_init(obj, name)
	})
	if err != nil {
		return nil, err
	}
	return &RNG{h: h}, nil
}

// NewSystemRNG creates generator reading from operating system entropy
// source.
func NewSystemRNG() (*RNG, error) {
	return NewRNG(RNGSystem)
}

var (
	defaultRNGOnce sync.Once
	defaultRNG     *RNG
	defaultRNGErr  error
)

// orDefault returns rng or, when it is nil, the shared system generator.
// The system generator is thread safe in the native library.
func (rng *RNG) orDefault() (*RNG, error) {
	if rng != nil {
		return rng, nil
	}
	defaultRNGOnce.Do(func() {
		defaultRNG, defaultRNGErr = NewSystemRNG()
	})
	return defaultRNG, defaultRNGErr
}

func (rng *RNG) obj() (C.botan_rng_t, error) {
	r, err := rng.orDefault()
	if err != nil {
		return nil, err
	}
	return r.h.get()
}

// Read fills p with random bytes.
func (rng *RNG) Read(p []byte) (int, error) {
	obj, err := rng.obj()
	if err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	if rc := C.botan_rng_get(obj, bytesPtr(p), sizeT(len(p))); rc != 0 {
		return 0, getErr("Error reading random bytes", rc)
	}
	return len(p), nil
}

// Get returns n random bytes.
func (rng *RNG) Get(n int) ([]byte, error) {
	if err := checkMin("Error reading random bytes", "length", n, 0); err != nil {
		return nil, err
	}
	res := make([]byte, n)
	if _, err := rng.Read(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Reseed requests bits of fresh entropy from the system source.
func (rng *RNG) Reseed(bits int) error {
	if err := checkMin("Error reseeding RNG", "bits", bits, 0); err != nil {
		return err
	}
	obj, err := rng.obj()
	if err != nil {
		return err
	}
	return getErr("Error reseeding RNG", C.botan_rng_reseed(obj, sizeT(bits)))
}

// ReseedFromRNG reseeds rng with bits taken from source.
func (rng *RNG) ReseedFromRNG(source *RNG, bits int) error {
	if err := checkMin("Error reseeding RNG", "bits", bits, 0); err != nil {
		return err
	}
	obj, err := rng.obj()
	if err != nil {
		return err
	}
	src, err := source.obj()
	if err != nil {
		return err
	}
	return getErr("Error reseeding RNG", C.botan_rng_reseed_from_rng(obj, src, sizeT(bits)))
}

// AddEntropy mixes caller supplied bytes into generator state.
func (rng *RNG) AddEntropy(entropy []byte) error {
	obj, err := rng.obj()
	if err != nil {
		return err
	}
	return getErr("Error adding entropy", C.botan_rng_add_entropy(obj, bytesPtr(entropy), sizeT(len(entropy))))
}

// Close releases generator handle. Closing the shared default generator
// through a nil *RNG is a no-op.
func (rng *RNG) Close() error {
	if rng == nil {
		return nil
	}
	rng.h.release()
	return nil
}
