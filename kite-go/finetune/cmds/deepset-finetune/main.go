package main

import (
	"github.com/kiteco/deepset/kite-golib/cmdline"
)

func main() {
	cmdline.MustDispatch(trainCmd, evaluateCmd, importCSVCmd, inspectCmd)
}
