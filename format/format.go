// Package format tags the serialization formats vectrune understands.
package format

import (
	"errors"
	"fmt"
	"strings"
)

type Format int

const (
	RuneFormat Format = iota
	YAMLFormat
	JSONFormat
	XMLFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"r":    RuneFormat,
		"rune": RuneFormat,
		"y":    YAMLFormat,
		"yml":  YAMLFormat,
		"yaml": YAMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"x":    XMLFormat,
		"xml":  XMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath guesses a format from a file name's suffix. Unknown
// suffixes default to rune.
func FromPath(path string) Format {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return YAMLFormat
	case strings.HasSuffix(path, ".json"):
		return JSONFormat
	case strings.HasSuffix(path, ".xml"):
		return XMLFormat
	default:
		return RuneFormat
	}
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case RuneFormat:
		return []byte("rune"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case XMLFormat:
		return []byte("xml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case RuneFormat:
		return ".rune"
	case YAMLFormat:
		return ".yaml"
	case JSONFormat:
		return ".json"
	case XMLFormat:
		return ".xml"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{RuneFormat, YAMLFormat, JSONFormat, XMLFormat}
}
