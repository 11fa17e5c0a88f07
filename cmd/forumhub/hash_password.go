// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/forumhub/forumhub/internal/config"
)

// NewHashPasswordCmd creates the hash-password subcommand.
func NewHashPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a password hash for seeding users",
		Long: `Hash PASSWORD with the configured algorithm and print the result.
Without an argument the password is read from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHashPassword,
	}

	cmd.Flags().String("hasher.algorithm", config.HasherArgon2id, "password hashing algorithm (argon2id or bcrypt)")

	return cmd
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	cfg, err := config.Read(configOptions(cmd))
	if err != nil {
		return err
	}

	var password string
	if len(args) == 1 {
		password = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return oops.Code("PASSWORD_REQUIRED").Wrap(err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hasher, err := newPasswordHasher(cfg.Hasher)
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(cmd.Context(), password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
