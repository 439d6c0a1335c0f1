package main

import "github.com/kamal-hamza/b64pack/cmd"

func main() {
	cmd.Execute()
}
