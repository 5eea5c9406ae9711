package main

import (
	"flag"
	"fmt"
	"log"

	"zerodb/bootstrap"
)

func main() {
	fmt.Println("Starting zerodb...")
	flag.Parse()

	if _, err := bootstrap.Run(); err != nil {
		log.Fatal(err)
	}
}
