// Package htaccess discovers legacy .htaccess files under a site root and
// translates the supported subset of their directives into nginx rules.
//
// Only RewriteRule and Options -Indexes produce output. RewriteCond lines
// are recognized and counted but never translated; this is a documented
// limitation of the translator, not an error. Everything else is ignored.
package htaccess

import (
	"bufio"
	"io"
	"strings"
)

// Filename is the reserved rule-file name searched for under a site root.
const Filename = ".htaccess"

// Kind identifies the directive category of a parsed line.
type Kind int

// Directive kinds.
const (
	KindRewrite Kind = iota
	KindOption
)

// Directive is one translated rule from a rule file.
type Directive struct {
	Kind    Kind
	Pattern string // rewrite pattern with ^/$ anchors stripped
	Target  string
	Flags   string // ordered flag list, appended verbatim ("redirect=301,last")
}

// Nginx renders the directive in nginx syntax.
func (d Directive) Nginx() string {
	switch d.Kind {
	case KindRewrite:
		if d.Flags != "" {
			return "rewrite ^" + d.Pattern + "$ " + d.Target + " " + d.Flags + ";"
		}
		return "rewrite ^" + d.Pattern + "$ " + d.Target + ";"
	case KindOption:
		return "autoindex off;"
	default:
		return ""
	}
}

// RuleFile identifies one legacy rule file found under a site root.
type RuleFile struct {
	Path string // absolute path
	Dir  string // site-relative directory, "." for the root itself
}

// Result holds the translated directives of one rule file plus parse
// diagnostics.
type Result struct {
	Directives []Directive
	Conditions int // RewriteCond lines seen (recognized, never emitted)
	Skipped    int // malformed RewriteRule lines skipped
}

// Parse translates the supported directives from one rule file. Malformed
// RewriteRule lines are skipped and counted; unrecognized lines are ignored
// without error.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "RewriteRule":
			// pattern and target are required, flags optional
			if len(fields) < 3 {
				res.Skipped++
				continue
			}
			d := Directive{
				Kind:    KindRewrite,
				Pattern: stripAnchors(fields[1]),
				Target:  fields[2],
			}
			if len(fields) > 3 {
				d.Flags = fields[3]
			}
			res.Directives = append(res.Directives, d)
		case "RewriteCond":
			res.Conditions++
		case "Options":
			if strings.Contains(line, "-Indexes") {
				res.Directives = append(res.Directives, Directive{Kind: KindOption})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// stripAnchors removes the leading ^ and trailing $ anchor from a rewrite
// pattern; the translation re-anchors it in nginx syntax.
func stripAnchors(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	pattern = strings.TrimSuffix(pattern, "$")
	return pattern
}
