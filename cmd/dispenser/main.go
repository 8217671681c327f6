// dispenser issues short-lived, tenant-scoped AWS credentials over
// HTTP Basic Authentication.
package main

import (
	"fmt"
	"os"

	"github.com/fruitstand/dispenser/cmd/dispenser/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dispenser: %v\n", err)
		os.Exit(1)
	}
}
