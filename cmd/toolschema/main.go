// Command toolschema generates tool schemas from Go source, writes editable
// classification maps, and organizes the selected methods into a tool list.
package main

func main() {
	Execute()
}
