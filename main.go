package main

import "github.com/network-dave/netrun/cmd"

func main() {
	cmd.Execute()
}
