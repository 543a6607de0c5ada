package auth

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const credentialDir = ".promptcrafting"

// Key describes where a provider API key can be found.
type Key struct {
	Provider string // "gemini", "openai"
	EnvVar   string
}

// Provider keys.
var (
	GeminiKey = Key{Provider: "gemini", EnvVar: "GEMINI_API_KEY"}
	OpenAIKey = Key{Provider: "openai", EnvVar: "OPENAI_API_KEY"}
)

// credentialFile is the GPG-encrypted key file name for the provider.
func (k Key) credentialFile() string {
	return k.Provider + ".gpg"
}

// GetAPIKey retrieves a provider API key from available sources.
// Priority order:
//  1. The provider's environment variable (GEMINI_API_KEY, OPENAI_API_KEY)
//  2. GPG-encrypted file at ~/.promptcrafting/<provider>.gpg
func GetAPIKey(k Key) (string, error) {
	if key := os.Getenv(k.EnvVar); key != "" {
		log.Debug().Str("provider", k.Provider).Msg("Using API key from environment variable")
		return key, nil
	}

	key, err := getFromGPG(k)
	if err == nil && key != "" {
		log.Debug().Str("provider", k.Provider).Msg("Using API key from GPG encrypted file")
		return key, nil
	}

	log.Error().Err(err).Str("provider", k.Provider).Msg("Failed to retrieve API key")
	return "", fmt.Errorf("%s API key not found. Set %s or store it in ~/%s/%s", k.Provider, k.EnvVar, credentialDir, k.credentialFile())
}

// getFromGPG decrypts the API key from the provider's credentials file.
func getFromGPG(k Key) (string, error) {
	credPath, err := getCredentialPath(k)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(credPath); os.IsNotExist(err) {
		return "", fmt.Errorf("GPG credentials file not found at %s", credPath)
	}

	log.Debug().Str("file", credPath).Msg("Decrypting GPG credentials")

	args := []string{"--decrypt", "--quiet"}
	if passphrasePath, ok := passphraseFile(); ok {
		args = append(args, "--pinentry-mode", "loopback", "--passphrase-file", passphrasePath)
	}
	args = append(args, credPath)

	output, err := exec.Command("gpg", args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("GPG decryption failed: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("GPG decryption failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

func getCredentialPath(k Key) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, credentialDir, k.credentialFile()), nil
}

// passphraseFile returns the .gpg-passphrase file in the credentials
// directory, if present and readable only by its owner.
func passphraseFile() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, credentialDir, ".gpg-passphrase")
	fi, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if mode := fi.Mode().Perm(); mode&0077 != 0 {
		log.Warn().
			Str("passphrase_file", path).
			Str("permissions", fmt.Sprintf("%04o", mode)).
			Msg("Passphrase file has insecure permissions (should be 0600); skipping")
		return "", false
	}
	return path, true
}
