package main

import "github.com/tallywatch/tallywatch/cmd"

func main() {
	cmd.Run()
}
