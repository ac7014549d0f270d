package profile

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML profile document and validates it. source is
// only used in error messages.
func Parse(data []byte, source string) (*Profile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("profile: file %s is empty", source)
	}

	var doc Profile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Profile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("profile: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	doc.Source = source
	if err := normalise(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFS reads the profile stored at path inside fsys.
func LoadFS(fsys fs.FS, path string) (*Profile, error) {
	if fsys == nil {
		return nil, fmt.Errorf("profile: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads a profile from the local filesystem.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadAll walks fsys and parses every JSON/YAML profile, keyed by profile
// name. Two files declaring the same name are rejected.
func LoadAll(fsys fs.FS) (map[string]*Profile, error) {
	out := make(map[string]*Profile)
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}
		p, err := LoadFS(fsys, path)
		if err != nil {
			return err
		}
		if existing, ok := out[p.Name]; ok {
			return fmt.Errorf("profile: duplicate profile %q (files %s and %s)", p.Name, existing.Source, path)
		}
		out[p.Name] = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Names returns the sorted profile names of a LoadAll result.
func Names(profiles map[string]*Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normalise(p *Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(p.Source), filepath.Ext(p.Source))
	}
	if p.Name == "" {
		return fmt.Errorf("profile: file %s has no name", p.Source)
	}

	headings := make([]string, 0, len(p.Headings))
	for idx, heading := range p.Headings {
		heading = strings.TrimSpace(heading)
		if heading == "" {
			return fmt.Errorf("profile: %s heading %d is empty", p.Source, idx)
		}
		headings = append(headings, heading)
	}
	p.Headings = headings

	placeholders := make(map[string]struct{})
	claim := func(label string) error {
		if _, ok := placeholders[label]; ok {
			return fmt.Errorf("profile: %s binds placeholder %q more than once", p.Source, label)
		}
		placeholders[label] = struct{}{}
		return nil
	}

	for idx := range p.Aliases {
		alias := &p.Aliases[idx]
		alias.Placeholder = strings.TrimSpace(alias.Placeholder)
		alias.Question = strings.TrimSpace(alias.Question)
		if alias.Placeholder == "" || alias.Question == "" {
			return fmt.Errorf("profile: %s alias %d needs placeholder and question", p.Source, idx)
		}
		if err := claim(alias.Placeholder); err != nil {
			return err
		}
	}

	sentinels := make(map[string]struct{})
	claimSentinel := func(phrase string) error {
		if _, ok := sentinels[phrase]; ok {
			return fmt.Errorf("profile: %s binds sentinel %q more than once", p.Source, phrase)
		}
		sentinels[phrase] = struct{}{}
		return nil
	}

	for idx := range p.Amounts {
		rule := &p.Amounts[idx]
		rule.Placeholder = strings.TrimSpace(rule.Placeholder)
		rule.Question = strings.TrimSpace(rule.Question)
		rule.Currency = strings.TrimSpace(rule.Currency)
		rule.DefaultCurrency = strings.TrimSpace(rule.DefaultCurrency)
		if rule.Placeholder == "" || rule.Question == "" {
			return fmt.Errorf("profile: %s amount %d needs placeholder and question", p.Source, idx)
		}
		if rule.DefaultCurrency == "" {
			rule.DefaultCurrency = rule.Currency
		}
		if err := claim(rule.Placeholder); err != nil {
			return err
		}
		if rule.Currency != "" {
			if err := claimSentinel(rule.Currency); err != nil {
				return err
			}
		}
	}

	for idx := range p.FollowUps {
		rule := &p.FollowUps[idx]
		rule.Sentinel = strings.TrimSpace(rule.Sentinel)
		rule.Gate = strings.TrimSpace(rule.Gate)
		rule.Question = strings.TrimSpace(rule.Question)
		if rule.Sentinel == "" || rule.Question == "" {
			return fmt.Errorf("profile: %s follow-up %d needs sentinel and question", p.Source, idx)
		}
		switch rule.Format {
		case "":
			rule.Format = FormatText
		case FormatText, FormatList:
		default:
			return fmt.Errorf("profile: %s follow-up %q has unknown format %q", p.Source, rule.Sentinel, rule.Format)
		}
		if err := claimSentinel(rule.Sentinel); err != nil {
			return err
		}
	}

	for idx := range p.Conditions {
		rule := &p.Conditions[idx]
		rule.Text = strings.TrimSpace(rule.Text)
		rule.Question = strings.TrimSpace(rule.Question)
		if rule.Text == "" || rule.Question == "" {
			return fmt.Errorf("profile: %s condition %d needs text and question", p.Source, idx)
		}
	}

	for idx := range p.Sections {
		rule := &p.Sections[idx]
		rule.Heading = strings.TrimSpace(rule.Heading)
		rule.Question = strings.TrimSpace(rule.Question)
		if rule.Heading == "" || rule.Question == "" {
			return fmt.Errorf("profile: %s section %d needs heading and question", p.Source, idx)
		}
	}
	if len(p.Headings) == 0 {
		for _, rule := range p.Sections {
			p.Headings = append(p.Headings, rule.Heading)
		}
	}

	if len(p.Questions) > 0 {
		hints := make(map[string]QuestionHint, len(p.Questions))
		for key, hint := range p.Questions {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				return fmt.Errorf("profile: %s defines a question hint with an empty key", p.Source)
			}
			hint.Type = strings.ToLower(strings.TrimSpace(hint.Type))
			hints[trimmed] = hint
		}
		p.Questions = hints
	}
	return nil
}
