package main

import "github.com/oshokin/volume-overlay/cmd/volume-daemon/cmd"

func main() {
	cmd.Execute()
}
