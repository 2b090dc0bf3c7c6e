package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	cloudzcrypt "github.com/hidden-space-xyz/CloudZCrypt-sub000"
)

func algorithms() []cloudzcrypt.EncryptionAlgorithm {
	return cloudzcrypt.Algorithms()
}

func kdfs() []cloudzcrypt.KeyDerivationAlgorithm {
	return cloudzcrypt.KeyDerivationAlgorithms()
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt <source> <destination>",
	Short: "Encrypt a file or directory tree",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cloudzcrypt.OpEncrypt, args[0], args[1], true)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <source> <destination>",
	Short: "Decrypt a file or vault directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCrypt(cloudzcrypt.OpDecrypt, args[0], args[1], false)
	},
}

func init() {
	encryptCmd.Flags().StringVarP(&obfuscate, "obfuscate", "O", "none", "name obfuscation mode (none, random, sha256, sha512)")
}

func runCrypt(op cloudzcrypt.Operation, source, destination string, confirm bool) error {
	alg, err := cloudzcrypt.ParseAlgorithm(viper.GetString("algorithm"))
	if err != nil {
		return err
	}
	kdfAlg, err := cloudzcrypt.ParseKDF(viper.GetString("kdf"))
	if err != nil {
		return err
	}
	mode, err := cloudzcrypt.ParseObfuscationMode(obfuscate)
	if err != nil {
		return err
	}

	pw, err := readPassword(confirm)
	if err != nil {
		return err
	}

	req := &cloudzcrypt.Request{
		SourcePath:      absPath(source),
		DestinationPath: absPath(destination),
		Password:        pw,
		Algorithm:       alg,
		KDF:             kdfAlg,
		Operation:       op,
		Obfuscation:     mode,
	}

	orch := cloudzcrypt.NewOrchestrator(cloudzcrypt.NewOSFS("/"),
		cloudzcrypt.WithLogger(newLogger()),
		cloudzcrypt.WithSpaceChecker(cloudzcrypt.OSSpaceChecker{}),
		cloudzcrypt.WithProgress(printProgress),
	)

	if problems := orch.Validate(req); len(problems) > 0 {
		return fmt.Errorf("cannot %s:\n  %s", op, strings.Join(problems, "\n  "))
	}
	for _, w := range orch.AnalyzeWarnings(req) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := orch.Execute(ctx, req)
	fmt.Fprintln(os.Stderr)

	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	fmt.Fprintf(os.Stderr, "%s: %d/%d files, %d/%d bytes in %s\n",
		op, result.ProcessedFiles, result.TotalFiles,
		result.ProcessedBytes, result.TotalBytes, result.Elapsed.Round(time.Millisecond))

	if result.IsHardFailure() {
		return fmt.Errorf("%s failed", op)
	}
	if !result.Success {
		return fmt.Errorf("%s completed with %d errors", op, len(result.Errors))
	}
	return nil
}

// absPath normalizes a user-supplied path to the slash-separated absolute
// form the OSFS root expects.
func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(abs)
}

func printProgress(s cloudzcrypt.Status) {
	fmt.Fprintf(os.Stderr, "\rProcessed %d/%d files (%d/%d bytes)",
		s.ProcessedFiles, s.TotalFiles, s.ProcessedBytes, s.TotalBytes)
}

func readPassword(confirm bool) ([]byte, error) {
	if password != "" {
		return []byte(password), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm password: ")
		again, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		if !cloudzcrypt.PasswordsMatch(pw, again) {
			return nil, fmt.Errorf("passwords do not match")
		}
	}
	return pw, nil
}
