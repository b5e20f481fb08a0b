package main

import "github.com/gaurav-prasanna/qbformat/cmd"

func main() {
	cmd.Execute()
}
