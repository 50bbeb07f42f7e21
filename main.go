package main

import "httplatencies/cmd"

func main() {
	cmd.Execute()
}
