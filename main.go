package main

import "github.com/frahmantamala/salary-calculator/cmd"

func main() {
	cmd.Execute()
}
