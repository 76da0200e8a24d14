// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"
	"runtime"
	"strings"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

// Info describes the running ocinstaller binary.
type Info struct {
	Number    string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildMode string `json:"build" yaml:"build"`
	GoVersion string `json:"go" yaml:"go"`
	Platform  string `json:"platform" yaml:"platform"`
}

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// String renders a single line summary, e.g. "ocinstaller 0.1.0 (abc123, dev)".
func (v Info) String() string {
	return "ocinstaller " + v.Number + " (" + v.Commit + ", " + v.BuildMode + ")"
}

func (v Info) Format(format string) (string, error) {
	var output []byte
	var err error
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		output, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to marshal version info to JSON")
		}
	case FormatYAML, "":
		output, err = yaml.Marshal(v)
		if err != nil {
			return "", errorx.IllegalFormat.Wrap(err, "failed to marshal version info to YAML")
		}
	default:
		return "", errorx.IllegalFormat.New("unsupported output format %q, expected yaml or json", format)
	}

	return strings.TrimRight(string(output), "\n"), nil
}

// Get collects the build information. Build mode is read on every call so ldflags and tests agree.
func Get() Info {
	return Info{
		Number:    Number(),
		Commit:    Commit(),
		BuildMode: BuildMode(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
