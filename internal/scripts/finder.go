// Package scripts locates script files across a Config's scriptsPaths and
// resolves a script name (exact or fuzzy) to one of them.
package scripts

import (
	"os"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shelltab/shelltab/internal/model"
)

// editDistanceThreshold is the maximum Levenshtein distance from the query
// for findScriptsByPartialName to consider a name a fuzzy match.
const editDistanceThreshold = 3

// Finder locates scripts across every environment's scriptsPaths.
type Finder struct {
	cfg *model.Config
}

// NewFinder builds a Finder over cfg. Scanning happens lazily, on each call,
// since scriptsPaths are only validated at scan time, not at construction.
func NewFinder(cfg *model.Config) *Finder {
	return &Finder{cfg: cfg}
}

// GetAllScripts scans every environment's scriptsPaths in configuration
// order, each directory read in ascending filename order, keeping only
// recognised script files. A name collision across paths keeps the later
// path's entry in the earlier entry's position.
func (f *Finder) GetAllScripts() ([]model.Script, error) {
	var out []model.Script
	index := make(map[string]int)

	for _, envName := range f.cfg.EnvironmentOrder {
		env := f.cfg.Environments[envName]
		for _, sp := range env.ScriptsPaths {
			if err := sp.Validate(); err != nil {
				return nil, &PathNotValidError{Path: sp.Path, Err: err}
			}
			entries, err := os.ReadDir(sp.Path)
			if err != nil {
				return nil, &PathNotValidError{Path: sp.Path, Err: err}
			}
			// os.ReadDir already returns entries sorted by filename.
			for _, entry := range entries {
				if entry.IsDir() || !model.IsScriptFile(entry.Name()) {
					continue
				}
				script := model.Script{
					Directory: sp.Path,
					Filename:  entry.Name(),
					Hidden:    sp.Hidden,
					Namespace: sp.Namespace,
				}
				name := script.Name()
				if i, ok := index[name]; ok {
					out[i] = script
					continue
				}
				index[name] = len(out)
				out = append(out, script)
			}
		}
	}
	return out, nil
}

// GetAllVisibleScripts is GetAllScripts with scripts from hidden paths
// dropped.
func (f *Finder) GetAllVisibleScripts() ([]model.Script, error) {
	all, err := f.GetAllScripts()
	if err != nil {
		return nil, err
	}
	visible := make([]model.Script, 0, len(all))
	for _, s := range all {
		if !s.Hidden {
			visible = append(visible, s)
		}
	}
	return visible, nil
}

// FindScriptByName returns the script whose Name matches exactly, or a
// NotFoundError.
func (f *Finder) FindScriptByName(name string) (*model.Script, error) {
	all, err := f.GetAllScripts()
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.Name() == name {
			script := s
			return &script, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// FindScriptsByPartialName returns every script whose name either fuzzy-
// contains query or is within editDistanceThreshold of it by Levenshtein
// distance — the latter catches typos the former can't, e.g. transposed
// letters.
func (f *Finder) FindScriptsByPartialName(query string) ([]model.Script, error) {
	all, err := f.GetAllScripts()
	if err != nil {
		return nil, err
	}
	params := levenshtein.NewParams()
	var matches []model.Script
	for _, s := range all {
		name := s.Name()
		if fuzzy.Match(query, name) || strings.Contains(name, query) {
			matches = append(matches, s)
			continue
		}
		if params.Distance(query, name) < editDistanceThreshold {
			matches = append(matches, s)
		}
	}
	return matches, nil
}
