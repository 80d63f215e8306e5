// Command token mints an access token for an existing employee code, for
// scripts and first-run setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/madar-hris/hrms-backend-go/internal/app"
	"github.com/madar-hris/hrms-backend-go/internal/config"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/madar-hris/hrms-backend-go/internal/repository/state"
)

func main() {
	code := flag.String("code", "", "employee code")
	expiration := flag.String("exp", "", "token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	flag.Parse()

	if *code == "" {
		fmt.Fprintln(os.Stderr, "usage: token -code EMP-001 [-exp 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	blobs, release, err := app.OpenBlobStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening storage:", err)
		os.Exit(1)
	}
	defer release()

	store, err := state.Open(ctx, blobs, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading state:", err)
		os.Exit(1)
	}

	emp, err := state.NewEmployeeRepository(store).GetByCode(ctx, *code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Employee %s: %v\n", *code, err)
		os.Exit(1)
	}

	exp := cfg.JWT.AccessExpiration
	if *expiration != "" {
		exp = *expiration
	}

	token, _, err := jwt.NewJWTService(cfg.JWT.Secret, exp).GenerateAccessToken(jwt.Subject{
		EmployeeID: emp.ID,
		Code:       emp.Code,
		Name:       emp.Name,
		Role:       string(emp.Role),
		IsAdmin:    emp.Role.IsAdmin(),
		BranchID:   emp.BranchID,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error minting token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
