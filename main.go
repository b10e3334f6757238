package main

import "github.com/quill-md/quill/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
