package main

import "struct-sync/cmd"

func main() {
	cmd.Execute()
}
