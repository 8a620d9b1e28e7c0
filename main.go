package main

import "github.com/saadjs/dietgoals/cmd/dietgoals"

func main() {
	dietgoals.Execute()
}
