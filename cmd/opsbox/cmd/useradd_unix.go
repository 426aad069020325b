//go:build unix

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsbox/opsbox/internal/execx"
)

var useraddUsers []string

var useraddCmd = &cobra.Command{
	Use:     "useradd",
	Aliases: []string{"ua"},
	Short:   "Create administrative users",
	Long:    "Create users with a shell and membership in the distribution's sudo group.",
	RunE:    runUseradd,
}

func init() {
	rootCmd.AddCommand(useraddCmd)
	useraddCmd.Flags().StringSliceVarP(&useraddUsers, "users", "u", nil,
		"user names to create (required)")
	_ = useraddCmd.MarkFlagRequired("users")
}

func runUseradd(cmd *cobra.Command, _ []string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("creating users requires root")
	}

	runner := execx.NewRunner(logger.Logger)
	group := sudoGroup()
	haveUseradd := execx.LookPath("useradd")

	for _, user := range useraddUsers {
		name, args := createUserCommand(haveUseradd, group, user)
		code, out, err := runner.Capture(cmd.Context(), name, args...)
		if err != nil {
			return fmt.Errorf("launching %s: %w", name, err)
		}
		if code != 0 {
			return fmt.Errorf("creating %s failed (status %d): %s",
				user, code, strings.TrimSpace(out))
		}
		logger.Info("created user", "user", user, "group", group, "tool", name)
	}
	return nil
}

// createUserCommand picks the user-creation tool the host actually has:
// shadow-utils useradd where present, busybox adduser otherwise (Alpine
// ships only the latter).
func createUserCommand(haveUseradd bool, group, user string) (string, []string) {
	if haveUseradd {
		return "useradd", []string{"-m", "-s", "/bin/sh", "-G", group, user}
	}
	return "adduser", []string{"-D", "-s", "/bin/sh", "-G", group, user}
}

// sudoGroup picks the admin group name by distribution family: Debian
// derivatives use sudo, the rest use wheel.
func sudoGroup() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "wheel"
	}
	s := string(data)
	if strings.Contains(s, "ID=debian") || strings.Contains(s, "ID_LIKE=debian") ||
		strings.Contains(s, "ID=ubuntu") {
		return "sudo"
	}
	return "wheel"
}
