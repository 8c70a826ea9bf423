package main

import "github.com/oshokin/volume-overlay/cmd/volume-dismiss/cmd"

func main() {
	cmd.Execute()
}
