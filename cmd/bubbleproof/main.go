package main

import "github.com/OpenTraceLab/bubbleproof/cmd/bubbleproof/cmd"

func main() {
	cmd.Execute()
}
