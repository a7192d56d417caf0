package main

import "SweetspotFinder/cmd"

func main() {
	cmd.Execute()
}
