package migration

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var fileNamePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_-]+)\.sql$`)

// Migration is a single versioned schema change.
type Migration struct {
	Version     string
	Description string
	File        string
	SQL         string
}

// Scan reads every *.sql file at the root of fsys and returns the migrations
// ordered by numeric version.
func Scan(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, newError("", ".", "read directory", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		match := fileNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			return nil, newError("", entry.Name(), "validate file name", ErrInvalidMigrationFile)
		}
		version := match[1]
		if other, ok := seen[version]; ok {
			return nil, newError(version, entry.Name(), "check duplicates",
				fmt.Errorf("%w: also declared by %s", ErrDuplicateVersion, other))
		}
		seen[version] = entry.Name()

		body, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, newError(version, entry.Name(), "read file", err)
		}
		if len(splitStatements(string(body))) == 0 {
			return nil, newError(version, entry.Name(), "parse SQL",
				fmt.Errorf("%w: no statements", ErrInvalidMigrationFile))
		}

		migrations = append(migrations, Migration{
			Version:     version,
			Description: strings.ReplaceAll(match[2], "_", " "),
			File:        entry.Name(),
			SQL:         string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		left, _ := strconv.Atoi(migrations[i].Version)
		right, _ := strconv.Atoi(migrations[j].Version)
		return left < right
	})

	return migrations, nil
}

// splitStatements splits a migration body on semicolons and drops blank
// statements and comment-only lines.
func splitStatements(body string) []string {
	var statements []string
	for _, raw := range strings.Split(body, ";") {
		var lines []string
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "--") {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			statements = append(statements, strings.Join(lines, "\n"))
		}
	}
	return statements
}
