package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mcesar/must"
)

var enumEntryRe = regexp.MustCompile(`^\s*(BOTAN_FFI_[A-Z0-9_]+)\s*=\s*(-?[0-9]+)\s*,?`)

// scanCodes collects FFI return codes from the enum in ffi.h. The first
// name seen for a value wins.
func scanCodes(r io.Reader) (map[int64]string, []int64, error) {
	scanner := bufio.NewScanner(r)
	found := make(map[int64]string)
	var keys []int64
	for scanner.Scan() {
		matches := enumEntryRe.FindStringSubmatch(scanner.Text())
		if len(matches) < 3 {
			continue
		}
		n, err := strconv.ParseInt(matches[2], 10, 64)
		if err != nil {
			log.Printf("invalid definition %s = %s: %+v", matches[1], matches[2], err)
			continue
		}
		if prev, ok := found[n]; ok {
			log.Printf("found definition for %d: %s", n, prev)
			continue
		}
		found[n] = matches[1]
		keys = append(keys, n)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return found, keys, scanner.Err()
}

func generate(r io.Reader, w io.Writer, pkg string) error {
	found, keys, err := scanCodes(r)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("no BOTAN_FFI_ definitions found")
	}
	str := new(strings.Builder)
	for _, k := range keys {
		str.WriteString(found[k])
	}
	out := new(strings.Builder)
	fmt.Fprintf(out, "package %s\n\n", pkg)
	fmt.Fprintf(out, "// Auto-generated definitions, do not edit\n")
	fmt.Fprintf(out, "var (\n\terrorStrings = \"%s\"\n", str)
	fmt.Fprintf(out, "\terrorStringMap = map[ErrorCode]string{\n")
	start := 0
	for _, k := range keys {
		n := len(found[k])
		fmt.Fprintf(out, "\t\t%d: errorStrings[%d:%d],\n", k, start, start+n)
		start += n
	}
	fmt.Fprintf(out, "\t}\n)\n")
	_, err = io.WriteString(w, out.String())
	return err
}

func main() {
	header := flag.String("header", "/usr/include/botan-2/botan/ffi.h", "path to Botan FFI header")
	out := flag.String("out", "error_strings.go", "output file")
	pkg := flag.String("package", "botan", "package name of generated file")
	flag.Parse()
	defer must.HandleFunc(func(err error) {
		if err != nil {
			log.Fatalf("fatal error: %+v", err)
		}
	})
	fp := must.Do(os.Open(*header))
	defer fp.Close()
	buf := must.Do(os.Create(*out))
	defer buf.Close()
	must.Do0(generate(fp, buf, *pkg))
}
