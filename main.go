package main

import "github.com/yumyai/exoclust/cmd"

func main() {
	cmd.Execute()
}
