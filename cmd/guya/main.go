package main

import "github.com/kerbaras/guya/cmd"

func main() {
	cmd.Execute()
}
