// Package config loads rule trees from TOML or YAML files authored by
// build-configuration tools, and writes a commented starter file.
package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/loaderkit/ruletree/pkg/errors"
	"github.com/loaderkit/ruletree/pkg/logging"
	"github.com/loaderkit/ruletree/pkg/rules"
)

// fileRule is the on-disk rule shape. Nested children use "sequence" and
// "one_of" tables.
type fileRule struct {
	Phase      string        `koanf:"phase" toml:"phase,omitempty"`
	Processor  string        `koanf:"processor" toml:"processor,omitempty"`
	Processors []string      `koanf:"processors" toml:"processors,omitempty"`
	Resource   *fileResource `koanf:"resource" toml:"resource,omitempty"`
	Sequence   []fileRule    `koanf:"sequence" toml:"sequence,omitempty"`
	OneOf      []fileRule    `koanf:"one_of" toml:"one_of,omitempty"`
}

type fileResource struct {
	Test        string   `koanf:"test" toml:"test,omitempty"`
	PathPattern string   `koanf:"path_pattern" toml:"path_pattern,omitempty"`
	Extensions  []string `koanf:"extensions" toml:"extensions,omitempty"`
	Include     []string `koanf:"include" toml:"include,omitempty"`
	Exclude     []string `koanf:"exclude" toml:"exclude,omitempty"`
}

type ruleFile struct {
	Rules []fileRule `koanf:"rules" toml:"rules"`
}

// Load reads a rule tree from a .toml, .yaml, or .yml file
func Load(path string) ([]*rules.Rule, error) {
	logger := logging.GetLogger("config")

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to load rule file %s", path)
	}

	var raw ruleFile
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse rule file %s", path)
	}

	roots := make([]*rules.Rule, 0, len(raw.Rules))
	for _, fr := range raw.Rules {
		roots = append(roots, toRule(fr))
	}

	if err := rules.Validate(roots); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid,
			"rule file %s is invalid", path)
	}

	logger.Debug().
		Str("path", path).
		Int("rootCount", len(roots)).
		Msg("loaded rule tree")
	return roots, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad,
		"unsupported rule file extension %q", filepath.Ext(path))
}

func toRule(fr fileRule) *rules.Rule {
	rule := &rules.Rule{
		Phase:      rules.Phase(fr.Phase),
		Processor:  fr.Processor,
		Processors: fr.Processors,
	}
	if fr.Resource != nil {
		rule.Resource = &rules.ResourceSpec{
			Test:        fr.Resource.Test,
			PathPattern: fr.Resource.PathPattern,
			Extensions:  fr.Resource.Extensions,
			Include:     fr.Resource.Include,
			Exclude:     fr.Resource.Exclude,
		}
	}
	for _, child := range fr.Sequence {
		rule.Sequence = append(rule.Sequence, toRule(child))
	}
	for _, child := range fr.OneOf {
		rule.OneOf = append(rule.OneOf, toRule(child))
	}
	return rule
}
