package main

import "github.com/perchapp/cli/internal/cmd"

func main() {
	cmd.Execute()
}
