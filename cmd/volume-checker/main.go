package main

import "github.com/oshokin/volume-overlay/cmd/volume-checker/cmd"

func main() {
	cmd.Execute()
}
