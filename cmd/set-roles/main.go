// Bulk-set staff roles from email=role pairs.
//
// Usage: set-roles alice@example.com=admin bob@example.com=cashier
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"resto-qr-pos/config"
	"resto-qr-pos/models"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: set-roles <email=role> [<email=role> ...]")
		os.Exit(2)
	}

	config.InitDB()

	for _, arg := range os.Args[1:] {
		email, roleStr, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("malformed argument %q, want email=role", arg)
		}
		role := models.UserRole(roleStr)
		if role != models.RoleAdmin && role != models.RoleCashier {
			log.Fatalf("unknown role %q for %s (want admin or cashier)", roleStr, email)
		}

		var user models.User
		if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
			log.Fatalf("user %s not found: %v", email, err)
		}
		if err := config.DB.Model(&user).Update("role", role).Error; err != nil {
			log.Fatalf("failed to set role for %s: %v", email, err)
		}
		fmt.Printf("%s -> %s\n", email, role)
	}
}
