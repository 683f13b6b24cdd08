package main

import (
	"strings"
	"testing"

	"gopkg.in/tylerb/is.v1"
)

const ffiExcerpt = `
enum BOTAN_FFI_ERROR {
   BOTAN_FFI_SUCCESS = 0,
   BOTAN_FFI_INVALID_VERIFIER = 1,

   BOTAN_FFI_ERROR_INVALID_INPUT = -1,
   BOTAN_FFI_ERROR_BAD_MAC = -2,
   BOTAN_FFI_ERROR_UNKNOWN_ERROR = -100,
};
#define BOTAN_FFI_HEX_LOWER_CASE 1
`

func TestGenerate(t *testing.T) {
	is := is.New(t)
	var out strings.Builder
	is.NotErr(generate(strings.NewReader(ffiExcerpt), &out, "botan"))
	src := out.String()
	is.True(strings.HasPrefix(src, "package botan\n"))
	is.True(strings.Contains(src, `errorStrings = "BOTAN_FFI_ERROR_UNKNOWN_ERRORBOTAN_FFI_ERROR_BAD_MACBOTAN_FFI_ERROR_INVALID_INPUTBOTAN_FFI_SUCCESSBOTAN_FFI_INVALID_VERIFIER"`))
	is.True(strings.Contains(src, "\t\t-100: errorStrings[0:29],\n"))
	is.True(strings.Contains(src, "\t\t-2: errorStrings[29:52],\n"))
	is.False(strings.Contains(src, "HEX_LOWER_CASE"))
}

func TestGenerate_Empty(t *testing.T) {
	is := is.New(t)
	var out strings.Builder
	is.Err(generate(strings.NewReader("int botan_ffi_api_version(void);\n"), &out, "botan"))
	is.Equal(out.Len(), 0)
}
