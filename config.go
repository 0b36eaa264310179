package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const configFileName = ".maptermrc"

type Config struct {
	ExportDirectory string
	WordsFile       string
	Confirmations   bool
}

func defaultConfig() *Config {
	return &Config{Confirmations: true}
}

// loadConfig reads ~/.maptermrc. A missing or unreadable file yields the
// defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	file, err := os.Open(filepath.Join(homeDir, configFileName))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()
	return parseConfig(file, homeDir)
}

// parseConfig reads key = value lines; blank lines, comments and unknown keys
// are skipped.
func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "exportdirectory", "export_directory", "exportdir":
			config.ExportDirectory = expandPath(value, homeDir)
		case "words", "words_file":
			config.WordsFile = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		}
	}
	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetExportPath(filename string) string {
	if c.ExportDirectory == "" {
		return filename
	}
	os.MkdirAll(c.ExportDirectory, 0755)
	return filepath.Join(c.ExportDirectory, filename)
}

// loadWords reads one title per line, skipping blanks and comments.
func loadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
