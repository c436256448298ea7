package main

import "github.com/KaramelBytes/eegplot-cli/cmd"

func main() {
	cmd.Execute()
}
