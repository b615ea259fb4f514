// Command cli is a small operator tool for user administration on a
// running deployment's database.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/amirasaad/splitshare/infra/initializer"
	"github.com/amirasaad/splitshare/pkg/config"
	usersvc "github.com/amirasaad/splitshare/pkg/service/user"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cli <command>")
		fmt.Println("Commands: register, users")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize dependencies: %v", err)
		os.Exit(1)
	}
	svc := usersvc.New(deps.Uow, deps.Logger)

	switch os.Args[1] {
	case "register":
		register(svc)
	case "users":
		listUsers(svc)
	default:
		fmt.Println("Unknown command:", os.Args[1])
	}
}

func register(svc *usersvc.Service) {
	reader := bufio.NewReader(os.Stdin)

	username, err := prompt(reader, "Username")
	if err != nil {
		color.Red("%v", err)
		return
	}
	email, err := prompt(reader, "Email")
	if err != nil {
		color.Red("%v", err)
		return
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		color.Red("%v", err)
		return
	}

	u, err := svc.CreateUser(context.Background(), username, email, string(password))
	if err != nil {
		color.Red("Failed to create user: %v", err)
		return
	}
	color.Green("Created user %s (%s)", u.Username, u.ID)
}

func listUsers(svc *usersvc.Service) {
	users, err := svc.ListUsers(context.Background())
	if err != nil {
		color.Red("Failed to list users: %v", err)
		return
	}
	for _, u := range users {
		fmt.Printf("%s  %-20s %s\n", u.ID, u.Username, u.Email)
	}
	color.Cyan("%d user(s)", len(users))
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label + ": ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
