package main

import "github.com/frahmantamala/hrconsole/cmd"

func main() {
	cmd.Execute()
}
