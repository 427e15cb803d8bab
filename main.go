package main

import "github.com/samuelfneumann/qmaze/cmd"

func main() {
	cmd.Execute()
}
