// Command measures converts amounts between units of measurement.
package main

import "github.com/mesh-intelligence/measures/internal/cli"

func main() {
	cli.Execute()
}
