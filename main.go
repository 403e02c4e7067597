package main

import "github.com/theirongolddev/finmate/cmd"

func main() {
	cmd.Execute()
}
