package main

import "github.com/alexiusacademia/strucconv/cmd"

func main() {
	cmd.Execute()
}
