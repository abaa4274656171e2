/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package main

import "github.com/gnames/gntraits/cmd"

func main() {
	cmd.Execute()
}
