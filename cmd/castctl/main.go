// Command castctl inspects Director archives and exports their assets.
package main

func main() {
	execute()
}
