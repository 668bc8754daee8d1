// Package config loads the reference lexer's dialect settings from TOML.
package config

import (
	"github.com/BurntSushi/toml"
)

// Dialect selects the handful of lexical variants real-world PHP-family
// source trips over: whether the bare `<?` short-open-tag is recognized
// (many hosts disable it) and any project-specific reserved words layered
// on top of the built-in keyword table.
type Dialect struct {
	// ShortOpenTag enables the bare `<?` open tag in addition to `<?php`
	// and `<?=`. Most modern PHP deployments disable it; default false.
	ShortOpenTag bool `toml:"short_open_tag"`

	// ExtraKeywords aliases a project-specific spelling (case-folded) to an
	// already-known keyword spelling, letting a dialect recognize framework
	// conventions (e.g. a legacy "elif" alias for "elseif") without the core
	// token table having to know about every project's house style.
	ExtraKeywords map[string]string `toml:"extra_keywords"`
}

// Default returns the standard dialect: short tags off, no extra keywords.
func Default() *Dialect {
	return &Dialect{}
}

// Load reads a Dialect from a TOML file at path. A partial file is fine —
// zero-valued fields fall back to Default's behavior; a missing or
// unreadable file is returned as an error.
func Load(path string) (*Dialect, error) {
	d := Default()
	_, err := toml.DecodeFile(path, d)
	if err != nil {
		return nil, err
	}
	return d, nil
}
