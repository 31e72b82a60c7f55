// Command wslmanager lists and manages WSL distributions.
package main

import "github.com/ubuntu/wslmanager/internal/cli"

func main() {
	cli.Execute()
}
