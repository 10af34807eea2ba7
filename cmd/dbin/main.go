package main

import "github.com/ValentinKolb/dBin/cmd"

func main() {
	cmd.Execute()
}
