// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/verscat/verscat/cmd/verscat"

func main() {
	cmd.Execute()
}
