package main

import "github.com/ChaudharyUsman/Transcript-Generate/cmd"

func main() {
	cmd.Execute()
}
