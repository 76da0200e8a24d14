// SPDX-License-Identifier: Apache-2.0

package common

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

// Render writes v to w as yaml or json.
func Render(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml":
		out, err = yaml.Marshal(v)
	case "json":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	default:
		return errorx.IllegalArgument.New("unsupported output format %q, expected yaml or json", format)
	}

	if err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to render output as %s", format)
	}

	_, err = w.Write(out)
	return err
}
