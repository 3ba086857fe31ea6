// Command taxid validates Russian INN and KPP identifiers and generates
// checksum-valid test INNs.
//
//	taxid validate [-kpp KPP] [-legacy] [-no-foreign] [-lang ru|en] [-json] INN...
//	taxid generate [-type individual|organization|both] [-n N] [-seed S]
package main

import (
	"fmt"
	"io"
	"os"
)

const usage = `usage:
  taxid validate [-kpp KPP] [-legacy] [-no-foreign] [-lang ru|en] [-json] INN...
  taxid generate [-type individual|organization|both] [-n N] [-seed S]
`

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "generate":
		return runGenerate(args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return exitUsage
	}
}
