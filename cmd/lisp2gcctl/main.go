// Command lisp2gcctl drives the lisp2gc runtime through named scenarios
// and ad hoc allocation/collection cycles from the shell.
package main

func main() {
	execute()
}
