// Command hashpassword prints a bcrypt hash for the admin password.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/m04kA/HomeHair-BookingService/internal/auth"
)

func main() {
	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "Failed to read password: %v\n", err)
			os.Exit(1)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
