package main

import "rewind/cmd"

func main() {
	cmd.Execute()
}
