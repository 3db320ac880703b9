package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/jackc/pgpassfile"

	"github.com/vvka-141/pgload/pkg/pgload"
)

// pgpassPath returns the platform-appropriate .pgpass file path.
func pgpassPath() string {
	if custom := os.Getenv("PGPASSFILE"); custom != "" {
		return custom
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "postgresql", "pgpass.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pgpass")
}

// lookupPgpass returns the .pgpass password matching cfg, or "" when the
// file is missing, unreadable or has no matching entry.
func lookupPgpass(cfg *pgload.ConnectionConfig) string {
	path := pgpassPath()
	if path == "" {
		return ""
	}
	passfile, err := pgpassfile.ReadPassfile(path)
	if err != nil {
		return ""
	}

	host := cfg.Host
	if strings.HasPrefix(host, "/") {
		// Unix socket directories match the "localhost" entry, as in libpq
		host = "localhost"
	}
	return passfile.FindPassword(host, strconv.Itoa(cfg.Port), cfg.Database, cfg.Username)
}

// passwordPrompter is the part of tui.Prompter used for credentials.
type passwordPrompter interface {
	Password(label string) (string, error)
	Confirm(message string) bool
}

// ensurePassword fills cfg.Password for password authentication.
// Precedence: connection string or $PGPASSWORD (already in cfg) > .pgpass >
// interactive prompt. The prompt runs when forced (-W) or when interactive.
// Reports whether the password was typed by the user.
func ensurePassword(cfg *pgload.ConnectionConfig, force, interactive bool, prompter passwordPrompter) (bool, error) {
	if cfg.AuthMethod != pgload.AuthMethodStandard && cfg.AuthMethod != pgload.AuthMethodCertificate {
		return false, nil
	}
	if cfg.Password != "" && !force {
		return false, nil
	}
	if !force {
		if password := lookupPgpass(cfg); password != "" {
			cfg.Password = password
			return false, nil
		}
	}
	if !force && (!interactive || cfg.AuthMethod == pgload.AuthMethodCertificate) {
		return false, nil
	}

	password, err := prompter.Password(fmt.Sprintf("Password for user %s", cfg.Username))
	if err != nil {
		return false, fmt.Errorf("%w: %w", pgload.ErrInvalidConfig, err)
	}
	cfg.Password = password
	return password != "", nil
}

// offerSavePgpass asks the user whether to save a prompted password to .pgpass.
func offerSavePgpass(cfg *pgload.ConnectionConfig, prompter passwordPrompter, out io.Writer) {
	if cfg.Password == "" {
		return
	}

	fmt.Fprintln(out, "")
	if !prompter.Confirm("Save password to .pgpass for future sessions?") {
		fmt.Fprintln(out, "Tip: provide password via $PGPASSWORD, .pgpass, or connection string.")
		return
	}

	if err := writePgpassEntry(cfg); err != nil {
		fmt.Fprintf(out, "Warning: failed to save .pgpass: %v\n", err)
		fmt.Fprintln(out, "Tip: provide password via $PGPASSWORD or connection string.")
		return
	}

	fmt.Fprintf(out, "Saved to %s\n", pgpassPath())
}

// writePgpassEntry adds or updates a .pgpass entry for the given connection.
func writePgpassEntry(cfg *pgload.ConnectionConfig) error {
	path := pgpassPath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	host := escapePgpass(cfg.Host)
	port := strconv.Itoa(cfg.Port)
	database := escapePgpass(cfg.Database)
	user := escapePgpass(cfg.Username)
	password := escapePgpass(cfg.Password)

	newEntry := fmt.Sprintf("%s:%s:%s:%s:%s", host, port, database, user, password)
	matchPrefix := fmt.Sprintf("%s:%s:%s:%s:", host, port, database, user)

	var lines []string
	if data, err := os.ReadFile(path); err == nil {
		lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read existing .pgpass: %w", err)
	}

	found := false
	for i, line := range lines {
		if strings.HasPrefix(line, matchPrefix) {
			lines[i] = newEntry
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, newEntry)
	}

	// PostgreSQL ignores a .pgpass readable by others on Unix
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600)
}

// escapePgpass escapes colons and backslashes in a .pgpass field value.
func escapePgpass(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	return s
}
