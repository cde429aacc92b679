package universe

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// playersFile is the YAML layout accepted by LoadFile for .yaml/.yml files
type playersFile struct {
	Players []string `yaml:"players"`
}

// LoadFile reads a universe from disk. YAML files hold a "players" list; any
// other file is read as one identifier per line with '#' comments.
func LoadFile(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseLines(data)
	}
}

// ParseLines parses newline separated identifiers
func ParseLines(data []byte) (*Universe, error) {
	var raw []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan universe: %w", err)
	}
	return New(raw)
}

// ParseYAML parses a YAML document with a top-level "players" list
func ParseYAML(data []byte) (*Universe, error) {
	var f playersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse universe yaml: %w", err)
	}
	return New(f.Players)
}

// Queryer is the subset of *sql.DB used to load the universe from the players table
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadDB reads the universe from the players table written by the seed tool
func LoadDB(ctx context.Context, db Queryer) (*Universe, error) {
	rows, err := db.QueryContext(ctx, `SELECT player_id FROM players ORDER BY position, player_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		raw = append(raw, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	return New(raw)
}
