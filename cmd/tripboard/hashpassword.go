package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tripboard/internal/auth"
	"tripboard/internal/config"
)

func newHashPasswordCmd(configPath *string) *cobra.Command {
	var user string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a basic auth password with Argon2id",
		Long: "Hash a basic auth password with Argon2id.\n\n" +
			"The password is read from the terminal without echo, or as one line\n" +
			"from stdin when stdin is not a terminal. With --write the hash is\n" +
			"stored under basic_auth in the config file and any plain password\n" +
			"there is removed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			hash, err := auth.Hash(password)
			if err != nil {
				return err
			}

			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			}
			if user == "" {
				return errors.New("--user is required with --write")
			}
			return writeCredentials(*configPath, user, hash)
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "basic auth username")
	cmd.Flags().BoolVar(&write, "write", false, "store the hash in the config file")
	return cmd
}

func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Enter password:   ")
		p1, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		fmt.Fprint(prompt, "Confirm password: ")
		p2, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		if string(p1) != string(p2) {
			return "", errors.New("passwords do not match")
		}
		return nonEmpty(string(p1))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

func nonEmpty(p string) (string, error) {
	if p == "" {
		return "", errors.New("password cannot be empty")
	}
	return p, nil
}

func writeCredentials(path, user, hash string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	cfg.BasicAuth = &config.BasicAuthConfig{Username: user, PasswordHash: hash}
	return cfg.Save(path)
}
