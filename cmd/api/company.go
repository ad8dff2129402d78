package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/calendar-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/calendar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/calendar-scheduler/internal/models"
)

// newCompanyCmd groups the administrator operations on tenants.
func newCompanyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage companies (tenants)",
	}
	cmd.AddCommand(newCompanyCreateCmd())
	cmd.AddCommand(newCompanySetActiveCmd("deactivate", false))
	cmd.AddCommand(newCompanySetActiveCmd("activate", true))
	return cmd
}

func newCompanyCreateCmd() *cobra.Command {
	var (
		company       models.Company
		ownerName     string
		ownerEmail    string
		ownerPassword string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a company, optionally with its owner account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			company.Active = true
			if err := account.ValidateCompany(&company); err != nil {
				return err
			}

			var owner *models.User
			if ownerEmail != "" {
				owner = &models.User{Name: ownerName, Email: ownerEmail, Role: models.RoleOwner}
				if err := account.ValidateUser(owner); err != nil {
					return err
				}
				if len(ownerPassword) < 6 {
					return fmt.Errorf("owner password must have at least 6 characters")
				}
				hashed, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				owner.PasswordHash = string(hashed)
			}

			repo := repository.NewAccountGormRepository(db)
			if err := repo.CreateCompany(contextOf(cmd), &company, owner); err != nil {
				return err
			}

			log.Info("company created",
				zap.Uint("company_id", company.ID),
				zap.String("slug", company.Slug),
				zap.String("timezone", company.Timezone),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&company.Name, "name", "", "company name")
	f.StringVar(&company.Slug, "slug", "", "unique company slug")
	f.StringVar(&company.Timezone, "timezone", "", "IANA timezone (default America/Sao_Paulo)")
	f.StringVar(&ownerName, "owner-name", "", "owner display name")
	f.StringVar(&ownerEmail, "owner-email", "", "owner login e-mail")
	f.StringVar(&ownerPassword, "owner-password", "", "owner password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func newCompanySetActiveCmd(use string, active bool) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("%s a company by slug", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			repo := repository.NewAccountGormRepository(db)
			if err := repo.SetCompanyActive(contextOf(cmd), slug, active); err != nil {
				return err
			}

			log.Info("company updated", zap.String("slug", slug), zap.Bool("active", active))
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "company slug")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
