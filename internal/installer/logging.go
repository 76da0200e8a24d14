// SPDX-License-Identifier: Apache-2.0

package installer

var logFields = struct {
	installPath string
	path        string
	stashPath   string
	targetPath  string
	perms       string
	prevPerms   string
	pathType    string
	rotationDir string
	wrapper     string
	candidates  string
}{
	installPath: "install_path",
	path:        "path",
	stashPath:   "stash_path",
	targetPath:  "target_path",
	perms:       "perms",
	prevPerms:   "previous_perms",
	pathType:    "path_type",
	rotationDir: "rotation_dir",
	wrapper:     "wrapper",
	candidates:  "candidates",
}
