// Command deliveryctl consulta el dashboard y exporta reportes desde la terminal
// usando el mismo almacén que la API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
