// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"fmt"
	"os"
	"strings"

	"github.com/joomcode/errorx"
)

// Close closes the file and logs an error if it fails.
// It's a wrapper of file.Close without the need for the caller to handle the error.
func Close(f *os.File) {
	if f == nil {
		return
	}

	err := f.Close()
	if err != nil {
		if strings.Contains(err.Error(), "file already closed") {
			return
		}

		fmt.Printf("ERROR: %+v\n", errorx.Decorate(err, "failed to close file %q", f.Name()))
	}
}
