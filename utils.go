package go_cipher

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

var configRegex = regexp.MustCompile("\\s*([\\w.]+)=\\s*(.+)\\s*;\\s*")

// cipherNameDelims are the separators accepted between algorithm names in
// a cipher list string.
const cipherNameDelims = " \t\r\n;,:"

// NextCipherToken extracts the first algorithm name from s and returns it
// together with the remainder of the string. Leading delimiters are
// skipped; the token runs to the next delimiter or the end of the string.
// A string holding no further names yields an empty token.
func NextCipherToken(s string) (token, rest string) {
	start := 0
	for start < len(s) && strings.IndexByte(cipherNameDelims, s[start]) >= 0 {
		start++
	}
	if start == len(s) {
		return "", ""
	}

	end := start
	for end < len(s) && strings.IndexByte(cipherNameDelims, s[end]) < 0 {
		end++
	}
	return s[start:end], s[end:]
}

// SplitCipherNames splits a delimiter separated cipher list string into its
// individual algorithm names. Names are returned in order of appearance;
// they are not resolved against the catalog here.
func SplitCipherNames(s string) []string {
	var names []string
	for {
		token, rest := NextCipherToken(s)
		if token == "" {
			return names
		}
		names = append(names, token)
		s = rest
	}
}

// Config parsing utility functions

// ParseConfig parses a configuration file and calls the callback for each key-value pair
func ParseConfig(s string, cb func(string, string)) {
	file, err := os.Open(s)
	if err != nil {
		if !strings.Contains(err.Error(), "no such file") {
			Error("%s", err.Error())
		}
		return
	}
	defer file.Close()
	Debug("Parsing config file '%s'", s)
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		line := scan.Text()
		groups := configRegex.FindStringSubmatch(line)
		if len(groups) != 3 {
			continue
		}
		cb(groups[1], groups[2])
	}
	if err := scan.Err(); err != nil {
		Error("reading input from %s config %s", s, err.Error())
	}
}

// parseIntWithDefault parses an integer string with a default value if parsing fails
func parseIntWithDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}

	// Simple integer parsing without external dependencies
	result := 0
	negative := false
	start := 0

	if s[0] == '-' {
		negative = true
		start = 1
	}
	if start == len(s) {
		return defaultValue // bare sign, no digits
	}

	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return defaultValue // Invalid character, return default
		}
		result = result*10 + int(s[i]-'0')
	}

	if negative {
		result = -result
	}

	return result
}
