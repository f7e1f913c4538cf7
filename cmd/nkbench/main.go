// Command nkbench lists the registered allocators and times native container
// workloads against managed reference containers.
package main

func main() {
	execute()
}
