// cmd/deployo/main.go
package main

import (
	"fmt"
	"os"

	"github.com/deployo/deployo/cmd/deployo/commands"
	"github.com/deployo/deployo/pkg/deployexec"
)

func main() {
	cmd := commands.NewCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(deployexec.ExitCode(err))
	}
}
