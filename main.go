package main

import "niche/cmd"

func main() {
	cmd.Execute()
}
