package main

import "github.com/soyuz43/jsast-go/cmd"

func main() {
	cmd.Execute()
}
