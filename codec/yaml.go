package codec

import (
	"fmt"
	"io"

	"github.com/davethomas11/vectrune/ir"

	"github.com/goccy/go-yaml"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	n, err := FromAny(v)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return n, nil
}

func encodeYAML(y *ir.Node, w io.Writer) error {
	d, err := yaml.Marshal(ToAny(y))
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
