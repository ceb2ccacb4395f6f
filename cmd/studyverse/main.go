package main

import "github.com/truongthuanhung/studyverse-cli/internal/cmd"

func main() {
	cmd.Execute()
}
