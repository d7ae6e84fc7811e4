// castdash computes executive dashboard metrics from a CAST DataMart.
package main

import (
	"os"

	"github.com/castinsight/castdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		_, _ = os.Stderr.WriteString("❌ " + err.Error() + "\n")
		os.Exit(1)
	}
}
