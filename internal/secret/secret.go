// Package secret reads the ScoutAPM API key from a secret-manager CLI.
//
// Supported backends: 1Password (op), Bitwarden (bw) and KeePassXC
// (keepassxc-cli). Plain-text keys via env vars or flags are intentionally
// not supported; the key never touches the shell history or process list.
package secret

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Source identifies which backend produced the key, for diagnostics.
type Source string

const (
	SourceOnePassword Source = "1password"
	SourceBitwarden   Source = "bitwarden"
	SourceKeePassXC   Source = "keepassxc"
)

// APIKey resolves the API key by trying each configured backend in order:
// 1Password, Bitwarden, KeePassXC.
func APIKey() (string, Source, error) {
	if k := OnePassword(); k != "" {
		return k, SourceOnePassword, nil
	}
	if k := Bitwarden(); k != "" {
		return k, SourceBitwarden, nil
	}
	if k := KeePassXC(); k != "" {
		return k, SourceKeePassXC, nil
	}
	return "", "", errors.New(
		"API key not found. Configure a secret backend: SCOUT_OP_ENTRY_PATH (1Password), " +
			"SCOUT_BW_ITEM_ID (Bitwarden), or SCOUT_KPXC_DB+SCOUT_KPXC_ENTRY (KeePassXC). " +
			"Plain-text keys are not supported")
}

// OnePassword reads the key via `op read`. Configure with SCOUT_OP_ENTRY_PATH
// (op://Vault/Item) or SCOUT_OP_VAULT + SCOUT_OP_ITEM; the field name comes
// from SCOUT_OP_FIELD and defaults to API_KEY.
func OnePassword() string {
	field := envTrim("SCOUT_OP_FIELD")
	if field == "" {
		field = "API_KEY"
	}
	if path := envTrim("SCOUT_OP_ENTRY_PATH"); path != "" {
		uri := strings.TrimRight(path, "/") + "/" + field
		return runQuiet(nil, "op", "read", uri)
	}
	vault := envTrim("SCOUT_OP_VAULT")
	item := envTrim("SCOUT_OP_ITEM")
	if vault == "" || item == "" {
		return ""
	}
	return runQuiet(nil, "op", "read", "op://"+vault+"/"+item+"/"+field)
}

// Bitwarden reads the key via `bw get password`. Configure with
// SCOUT_BW_ITEM_ID; SCOUT_BW_SESSION is forwarded as BW_SESSION when the
// vault is locked.
func Bitwarden() string {
	id := envTrim("SCOUT_BW_ITEM_ID")
	if id == "" {
		return ""
	}
	var env []string
	if sess := envTrim("SCOUT_BW_SESSION"); sess != "" {
		env = append(env, "BW_SESSION="+sess)
	}
	return runQuiet(env, "bw", "get", "password", id)
}

// KeePassXC reads the key via `keepassxc-cli show`. Configure with
// SCOUT_KPXC_DB and SCOUT_KPXC_ENTRY; the attribute defaults to Password.
func KeePassXC() string {
	db := envTrim("SCOUT_KPXC_DB")
	entry := envTrim("SCOUT_KPXC_ENTRY")
	if db == "" || entry == "" {
		return ""
	}
	attr := envTrim("SCOUT_KPXC_ATTRIBUTE")
	if attr == "" {
		attr = "Password"
	}
	return runQuiet(nil, "keepassxc-cli", "show", "-a", attr, db, entry)
}

// runQuiet runs a backend CLI with stderr discarded so vault prompts or
// warnings never leak into our output. Returns "" on any failure.
func runQuiet(extraEnv []string, bin string, args ...string) string {
	cmd := exec.Command(bin, args...)
	cmd.Stdin = nil
	cmd.Stderr = nil
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func envTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
