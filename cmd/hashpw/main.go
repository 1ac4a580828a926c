// Command hashpw prints the bcrypt hash of a password, for use as the
// STAFF_PASS_HASH environment variable.
//
// Usage: hashpw <password> [cost]
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/mlovren/tourism-scheduler/internal/utils"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: hashpw <password> [cost]")
	}
	cost := bcrypt.DefaultCost
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid cost %q", os.Args[2])
		}
		cost = n
	}
	hash, err := utils.HashPassword(os.Args[1], cost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}
