package main

import "github.com/rkoski/bookdex/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
