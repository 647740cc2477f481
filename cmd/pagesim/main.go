// Command pagesim compares page-replacement policies on a reference string.
package main

import "github.com/sarchlab/pagesim/cmd/pagesim/cmd"

func main() {
	cmd.Execute()
}
