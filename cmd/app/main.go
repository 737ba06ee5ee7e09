package main

import (
	"fmt"
	"os"

	assistservice "road-assist/internal/assist-service"
	authservice "road-assist/internal/auth-service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <assist-service|auth-service>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "assist-service":
		if err := assistservice.New().Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "auth-service":
		if err := authservice.New().Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown service: %s\n", os.Args[1])
		os.Exit(1)
	}
}
