// Package scriptparser turns script file content into a Command stream: a
// small stateful line-based dispatcher recognising ACTION:/INCLUDE:/
// TEMPLATE:/WAIT:/BASH: directives and I:/TTY:/D: modifiers ahead of a shell
// command.
package scriptparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shelltab/shelltab/internal/model"
)

// Loader resolves the re-entrant loads ACTION: and INCLUDE: need: ACTION
// goes through the Script Finder by name, INCLUDE reads an arbitrary path
// (absolute, or relative to the including script's directory) as a
// synthetic Script. The Parser only depends on this interface, not on
// internal/scripts directly, so it can be tested without a real Finder.
type Loader interface {
	LoadByName(name string) (model.Script, string, error)
	LoadByPath(path string) (model.Script, string, error)
}

// Parser parses one script's content into a Command stream.
type Parser struct {
	loader Loader
}

// NewParser builds a Parser backed by loader.
func NewParser(loader Loader) *Parser {
	return &Parser{loader: loader}
}

// Parse parses content, the contents of script, into a Command stream.
func (p *Parser) Parse(script model.Script, content string) ([]Command, error) {
	return p.parse(script, content, map[string]bool{})
}

// modifierState accumulates I:/TTY:/D: modifiers across a re-dispatch chain
// within a single line; it resets to zero once a line emits a shell command.
type modifierState struct {
	ignoreError bool
	tty         bool
	deferred    bool
}

func (p *Parser) parse(script model.Script, content string, visited map[string]bool) ([]Command, error) {
	key := filepath.Clean(script.Path())
	if visited[key] {
		return nil, fmt.Errorf("re-entrant script load cycle at %q", script.Path())
	}
	visited[key] = true
	defer delete(visited, key)

	var commands []Command
	var mod modifierState

	for _, line := range preprocess(content) {
		emitted, replacement, err := p.dispatch(script, line, &mod, visited)
		if err != nil {
			return nil, err
		}
		if replacement != nil {
			commands = replacement
			continue
		}
		commands = append(commands, emitted...)
	}
	return commands, nil
}

// dispatch handles one preprocessed line. It returns either commands to
// append to the stream so far, or a full replacement stream (for ACTION:/
// INCLUDE:, which discard everything parsed before them), never both.
func (p *Parser) dispatch(script model.Script, line string, mod *modifierState, visited map[string]bool) ([]Command, []Command, error) {
	text := line
	for {
		switch {
		case strings.HasPrefix(text, "ACTION:"):
			name := strings.TrimSpace(strings.TrimPrefix(text, "ACTION:"))
			target, targetContent, err := p.loader.LoadByName(name)
			if err != nil {
				return nil, nil, fmt.Errorf("ACTION: %q: %w", name, err)
			}
			replacement, err := p.parse(target, targetContent, visited)
			if err != nil {
				return nil, nil, err
			}
			return nil, replacement, nil

		case strings.HasPrefix(text, "INCLUDE:"):
			raw := strings.TrimSpace(strings.TrimPrefix(text, "INCLUDE:"))
			path := raw
			if !filepath.IsAbs(path) {
				path = filepath.Join(script.Directory, path)
			}
			target, targetContent, err := p.loader.LoadByPath(path)
			if err != nil {
				return nil, nil, fmt.Errorf("INCLUDE: %q: %w", raw, err)
			}
			replacement, err := p.parse(target, targetContent, visited)
			if err != nil {
				return nil, nil, err
			}
			return nil, replacement, nil

		case strings.HasPrefix(text, "TEMPLATE:"):
			rest := strings.TrimSpace(strings.TrimPrefix(text, "TEMPLATE:"))
			src, dst, err := splitTemplateArg(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("TEMPLATE: %q: %w", rest, err)
			}
			if !filepath.IsAbs(src) {
				src = filepath.Join(script.Directory, src)
			}
			if !filepath.IsAbs(dst) {
				dst = filepath.Join(script.Directory, dst)
			}
			return []Command{{Kind: KindTemplate, TemplateSource: src, TemplateDestination: dst, Line: line}}, nil, nil

		case strings.HasPrefix(text, "WAIT:"):
			return []Command{{Kind: KindWait, Line: line}}, nil, nil

		case strings.HasPrefix(text, "BASH:"):
			raw := strings.TrimSpace(strings.TrimPrefix(text, "BASH:"))
			path := raw
			if !filepath.IsAbs(path) {
				path = filepath.Join(script.Directory, path)
			}
			cmd := Command{Kind: KindBash, BashPath: path, IgnoreError: mod.ignoreError, Line: line}
			*mod = modifierState{}
			return []Command{cmd}, nil, nil

		case strings.HasPrefix(text, "I:"):
			mod.ignoreError = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "I:"))
			continue

		case strings.HasPrefix(text, "TTY:"):
			mod.tty = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "TTY:"))
			continue

		case strings.HasPrefix(text, "D:"):
			mod.deferred = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "D:"))
			continue

		default:
			kind := KindSynchronous
			if mod.deferred {
				kind = KindDeferred
			}
			cmd := Command{Kind: kind, Shell: text, IgnoreError: mod.ignoreError, TTY: mod.tty, Line: line}
			*mod = modifierState{}
			return []Command{cmd}, nil, nil
		}
	}
}

// splitTemplateArg splits "src:dst" into its two halves.
func splitTemplateArg(rest string) (string, string, error) {
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("expected <source>:<destination>")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// preprocess splits content on LF, drops blank and comment lines, strips
// trailing whitespace, and folds continuation lines (at least three leading
// spaces) onto the previous accumulated line with a single joining space.
func preprocess(content string) []string {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimRight(raw, " \t\r")
		if trimmed == "" {
			continue
		}
		leftTrimmed := strings.TrimLeft(trimmed, " \t")
		if strings.HasPrefix(leftTrimmed, "#") {
			continue
		}
		leadingSpaces := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		if leadingSpaces >= 3 && len(lines) > 0 {
			lines[len(lines)-1] = lines[len(lines)-1] + " " + strings.TrimSpace(trimmed)
			continue
		}
		lines = append(lines, strings.TrimSpace(trimmed))
	}
	return lines
}
