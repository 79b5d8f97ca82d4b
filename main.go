package main

import "github.com/QsSama-W/aliddns/cmd"

func main() {
	cmd.Execute()
}
