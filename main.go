package main

import "semcat/cmd"

func main() {
	cmd.Execute()
}
