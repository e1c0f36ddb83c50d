package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/hrconsole/internal/core/datamodel/document"
	"github.com/frahmantamala/hrconsole/internal/repository"
	"github.com/spf13/cobra"
)

const (
	seedAdminEmail    = "admin@example.com"
	seedAdminPassword = "admin"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the stored document with an admin and sample departments",
	Long:  `Seed the stored document with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initializeDependencies(ctx)
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.Close()

		repo := deps.loadRepository(ctx, nil)
		if err := seed(ctx, repo, clearData); err != nil {
			log.Fatalf("seed: %v", err)
		}
	},
}

func seed(ctx context.Context, repo *repository.Repository, clear bool) error {
	if clear {
		if err := repo.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset document: %w", err)
		}
		fmt.Println("Document reset to defaults")
	}

	if repo.CountAdmins() == 0 {
		if _, exists := repo.FindAccountByEmail(seedAdminEmail); exists {
			fmt.Println("admin email is taken by a non-admin account; skipping admin seed")
		} else {
			_, err := repo.CreateAccount(ctx, repository.AccountFields{
				FirstName: "Admin",
				Email:     seedAdminEmail,
				Role:      document.RoleAdmin,
				Status:    document.StatusActive,
				Password:  seedAdminPassword,
			})
			if err != nil {
				return fmt.Errorf("failed to insert admin account: %w", err)
			}
			fmt.Println("Seeded admin account:", seedAdminEmail)
		}
	} else {
		fmt.Println("admin account already exists")
	}

	departments := []repository.DepartmentFields{
		{Name: "Engineering", Description: "Builds and runs the product"},
		{Name: "Human Resources", Description: "People operations"},
		{Name: "Sales", Description: "Customer acquisition"},
	}

	for _, d := range departments {
		if departmentExists(repo, d.Name) {
			continue
		}
		if _, err := repo.CreateDepartment(ctx, d); err != nil {
			return fmt.Errorf("failed to insert department %s: %w", d.Name, err)
		}
		fmt.Printf("Seeded department: %s\n", d.Name)
	}

	fmt.Println("Departments seeded successfully")
	return nil
}

func departmentExists(repo *repository.Repository, name string) bool {
	for _, d := range repo.Departments() {
		if d.Name == name {
			return true
		}
	}
	return false
}
