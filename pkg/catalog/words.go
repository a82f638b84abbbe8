// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// SplitWords splits a command line into words with POSIX quoting rules.
// Nothing is expanded: $VAR, ~, globs and braces stay as written, so a game
// can refer to variables its own env table sets. Command substitution and
// arithmetic are rejected. Empty input yields no words.
func SplitWords(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var words []string
	p := syntax.NewParser()
	for w, err := range p.WordsSeq(strings.NewReader(s)) {
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidCommand, s, err)
		}
		var sb strings.Builder
		for _, part := range w.Parts {
			if err := writeLiteral(&sb, s, part, false); err != nil {
				return nil, fmt.Errorf("%w %q: %v", ErrInvalidCommand, s, err)
			}
		}
		words = append(words, sb.String())
	}
	return words, nil
}

func writeLiteral(sb *strings.Builder, src string, part syntax.WordPart, quoted bool) error {
	switch x := part.(type) {
	case *syntax.Lit:
		sb.WriteString(unescape(x.Value, quoted))
	case *syntax.SglQuoted:
		if x.Dollar {
			return fmt.Errorf("$'...' quoting is not supported")
		}
		sb.WriteString(x.Value)
	case *syntax.DblQuoted:
		for _, inner := range x.Parts {
			if err := writeLiteral(sb, src, inner, true); err != nil {
				return err
			}
		}
	case *syntax.ParamExp:
		// Kept verbatim for the game's own shell or environment.
		sb.WriteString(src[x.Pos().Offset():x.End().Offset()])
	default:
		return fmt.Errorf("%s is not supported", nodeName(part))
	}
	return nil
}

// unescape drops the backslashes of a literal. Inside double quotes only
// $, `, ", \ and newline are escapable.
func unescape(lit string, quoted bool) string {
	if !strings.Contains(lit, `\`) {
		return lit
	}
	var sb strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			sb.WriteByte(c)
			continue
		}
		next := lit[i+1]
		switch {
		case next == '\n':
			i++
		case !quoted || strings.IndexByte("$`\"\\", next) >= 0:
			sb.WriteByte(next)
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func nodeName(part syntax.WordPart) string {
	switch part.(type) {
	case *syntax.CmdSubst:
		return "command substitution"
	case *syntax.ArithmExp:
		return "arithmetic expansion"
	case *syntax.ProcSubst:
		return "process substitution"
	default:
		return fmt.Sprintf("%T", part)
	}
}
