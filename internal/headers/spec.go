package headers

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/net/http/httpguts"

	errs "httplatencies/internal/errors"
)

// Source points at a file holding one value per line for a single header.
// It is written on the command line as name:path.
type Source struct {
	Name string
	Path string
}

// Spec is a header name together with its values, in file order.
type Spec struct {
	Name   string
	Values []string
}

// ParseSource splits a "name:path" argument. Only the first colon separates,
// so the path may contain further colons.
func ParseSource(arg string) (Source, error) {
	name, path, ok := strings.Cut(arg, ":")
	if !ok {
		return Source{}, errs.NewConfigurationError("header-file",
			fmt.Errorf("no : found in %q, need form header_name:path_to_file_containing_header_value_per_line", arg))
	}

	if !httpguts.ValidHeaderFieldName(name) {
		return Source{}, errs.NewConfigurationError("header-file", fmt.Errorf("header name invalid: %q", name))
	}

	if path == "" {
		return Source{}, errs.NewConfigurationError("header-file", fmt.Errorf("empty path for header %q", name))
	}

	return Source{Name: http.CanonicalHeaderKey(name), Path: path}, nil
}

// Load reads all values for src into memory.
func Load(src Source) (Spec, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return Spec{}, errs.NewConfigurationError("header-file", err)
	}
	defer f.Close()

	values, err := ReadValues(f)
	if err != nil {
		return Spec{}, errs.NewConfigurationError("header-file", fmt.Errorf("%s: %w", src.Path, err))
	}

	return Spec{Name: src.Name, Values: values}, nil
}

// ReadValues splits r on '\n' and validates every line as a header value.
// The terminator is stripped; a final line without terminator is kept.
func ReadValues(r io.Reader) ([]string, error) {
	var values []string

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			value := bytes.TrimSuffix(line, []byte{'\n'})
			if !httpguts.ValidHeaderFieldValue(string(value)) {
				return nil, fmt.Errorf("invalid header value: %q", line)
			}

			values = append(values, string(value))
		}

		if err == io.EOF {
			return values, nil
		}

		if err != nil {
			return nil, err
		}
	}
}

// LoadAll parses and loads every name:path argument. The first failure wins.
func LoadAll(args []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(args))

	for _, arg := range args {
		src, err := ParseSource(arg)
		if err != nil {
			return nil, err
		}

		spec, err := Load(src)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
