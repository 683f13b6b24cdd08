package botan

//#include "common.h"
import "C"

const bcryptHashLength = 60

// BcryptHash hashes password with bcrypt at given work factor. Salt is
// taken from rng, so hashing the same password twice yields different
// strings. A nil rng means the shared system generator.
func BcryptHash(password string, rng *RNG, cost int) (string, error) {
	if err := checkMin("Error generating bcrypt hash", "work factor", cost, 0); err != nil {
		return "", err
	}
	cPass, err := cString(password)
	if err != nil {
		return "", err
	}
	defer freePtr(cPass)
	obj, err := rng.obj()
	if err != nil {
		return "", err
	}
	buf, err := negotiate("Error generating bcrypt hash", bcryptHashLength+1, func(out *C.uint8_t, outLen *C.size_t) C.int {
		return C.botan_bcrypt_generate(out, outLen, cPass, obj, sizeT(cost), 0)
	})
	if err != nil {
		return "", err
	}
	return trimNul(buf), nil
}

// BcryptVerify checks password against bcrypt hash. A mismatch is a false
// result, not an error.
func BcryptVerify(password, hash string) (bool, error) {
	if err := initialize(); err != nil {
		return false, err
	}
	cPass, err := cString(password)
	if err != nil {
		return false, err
	}
	defer freePtr(cPass)
	cHash, err := cString(hash)
	if err != nil {
		return false, err
	}
	defer freePtr(cHash)
	switch rc := C.botan_bcrypt_is_valid(cPass, cHash); ErrorCode(rc) {
	case CodeSuccess:
		return true, nil
	case CodeInvalidVerifier:
		return false, nil
	default:
		return false, asConversion(getErr("Error verifying bcrypt hash", rc))
	}
}
