package main

import "github.com/jcmexdev/storefront-lookup/internal/cmd"

func main() {
	cmd.Execute()
}
