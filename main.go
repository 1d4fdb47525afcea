package main

import "unbudget/cmd"

func main() {
	cmd.Execute()
}
