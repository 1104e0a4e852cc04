// Promote a staff user to admin by email.
//
// Usage: promote-admin <email>
package main

import (
	"fmt"
	"log"
	"os"

	"resto-qr-pos/config"
	"resto-qr-pos/models"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: promote-admin <email>")
		os.Exit(2)
	}
	email := os.Args[1]

	config.InitDB()

	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("user %s not found: %v", email, err)
	}
	if user.Role == models.RoleAdmin {
		fmt.Printf("%s is already an admin\n", email)
		return
	}
	if err := config.DB.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
		log.Fatalf("failed to promote %s: %v", email, err)
	}
	fmt.Printf("%s promoted to admin\n", email)
}
