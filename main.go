package main

import "github.com/xvierd/focuswatch/cmd"

func main() {
	cmd.Execute()
}
