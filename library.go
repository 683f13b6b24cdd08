package botan

//#include "common.h"
import "C"

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// MinimumAPIVersion is the oldest FFI API level the package relies on.
const MinimumAPIVersion = 20180713

// Version describes the native library the package is linked against.
type Version struct {
	Major       int
	Minor       int
	Patch       int
	ReleaseDate int    // YYYYMMDD, zero for unreleased builds
	FFIAPI      uint32 // FFI API level
	String      string // Library version string
}

var (
	initOnce sync.Once
	initErr  error
)

// initialize checks once that the native library provides the API level
// this package needs. Every constructor calls it, so explicit set-up is
// never required.
func initialize() error {
	initOnce.Do(func() {
		api := uint32(C.botan_ffi_api_version())
		if !SupportsAPI(MinimumAPIVersion) {
			initErr = newError(fmt.Sprintf("Unsupported Botan FFI API level %d", api), CodeNotImplemented, ErrNotImplemented)
			return
		}
		log().WithFields(logrus.Fields{
			"version": C.GoString(C.botan_version_string()),
			"ffi_api": api,
		}).Debug("botan library initialized")
	})
	return initErr
}

// SupportsAPI reports whether the linked library implements FFI API level
// v.
func SupportsAPI(v uint32) bool {
	return C.botan_ffi_supports_api(C.uint32_t(v)) == 0
}

// GetVersion returns version information of the linked library.
func GetVersion() (Version, error) {
	if err := initialize(); err != nil {
		return Version{}, err
	}
	return Version{
		Major:       int(C.botan_version_major()),
		Minor:       int(C.botan_version_minor()),
		Patch:       int(C.botan_version_patch()),
		ReleaseDate: int(C.botan_version_datestamp()),
		FFIAPI:      uint32(C.botan_ffi_api_version()),
		String:      C.GoString(C.botan_version_string()),
	}, nil
}
