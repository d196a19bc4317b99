// Command kairo shows the 仮想回路 page in the terminal and renders static
// snapshots of its circuit graph.
package main

func main() {
	Execute()
}
