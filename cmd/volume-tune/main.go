package main

import "github.com/oshokin/volume-overlay/cmd/volume-tune/cmd"

func main() {
	cmd.Execute()
}
