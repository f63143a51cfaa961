// The desim command runs small example simulations built on the desim kernel.
package main

func main() {
	Execute()
}
