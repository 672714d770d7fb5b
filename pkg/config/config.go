// Package config loads exprc settings from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/agenthands/exprc/pkg/compiler/emitter"
	"github.com/agenthands/exprc/pkg/compiler/lexer"
)

// Rule is one lexer rule. Exactly one of Pattern and Literal must be set.
type Rule struct {
	Kind    string `yaml:"kind"`
	Pattern string `yaml:"pattern,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

type LexerConfig struct {
	// Skip patterns are tried in order before any rule.
	Skip []string `yaml:"skip,omitempty"`
	// Rules are tried in order; the first match wins. Empty means the
	// built-in rule set.
	Rules []Rule `yaml:"rules,omitempty"`
}

type EmitConfig struct {
	Indent   string   `yaml:"indent"`
	Includes []string `yaml:"includes"`
}

type RunConfig struct {
	// Gas is the instruction limit for the vm.
	Gas int `yaml:"gas"`
}

// Config is the top level of exprc.yaml.
type Config struct {
	Lexer LexerConfig `yaml:"lexer"`
	Emit  EmitConfig  `yaml:"emit"`
	Run   RunConfig   `yaml:"run"`
	// Jobs bounds concurrent file compilation. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Filename is where the config was loaded from, if anywhere.
	Filename string `yaml:"-"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Emit: EmitConfig{
			Indent:   "    ",
			Includes: []string{"stdio.h"},
		},
		Run: RunConfig{Gas: 1000000},
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// defaults.
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", filename)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, errors.Wrapf(err, "config %q", filename)
	}
	cfg.Filename = filename
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Lexer.Rules) == 0 && len(c.Lexer.Skip) > 0 {
		return errors.New("lexer.skip requires lexer.rules")
	}
	for i, r := range c.Lexer.Rules {
		if r.Kind == "" {
			return errors.Errorf("lexer.rules[%d]: missing kind", i)
		}
		if (r.Pattern == "") == (r.Literal == "") {
			return errors.Errorf("lexer.rules[%d] (%s): exactly one of pattern and literal must be set", i, r.Kind)
		}
	}
	if c.Run.Gas <= 0 {
		return errors.Errorf("run.gas must be positive, got %d", c.Run.Gas)
	}
	if c.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	// Surface bad patterns now rather than on first use.
	if _, err := c.NewLexer(""); err != nil {
		return err
	}
	return nil
}

// NewLexer builds a lexer from the configured rules.
func (c *Config) NewLexer(file string) (*lexer.Lexer, error) {
	if len(c.Lexer.Rules) == 0 {
		return lexer.Default(file), nil
	}
	l := lexer.New(file)
	for _, r := range c.Lexer.Rules {
		if r.Literal != "" {
			l.AddLiteral(lexer.Kind(r.Kind), r.Literal)
			continue
		}
		if err := l.AddToken(lexer.Kind(r.Kind), r.Pattern); err != nil {
			return nil, errors.Wrap(err, "lexer.rules")
		}
	}
	for _, s := range c.Lexer.Skip {
		if err := l.Skip(s); err != nil {
			return nil, errors.Wrap(err, "lexer.skip")
		}
	}
	return l, nil
}

// EmitOptions converts the emit section into emitter options.
func (c *Config) EmitOptions() []emitter.Option {
	return []emitter.Option{
		emitter.WithIndent(c.Emit.Indent),
		emitter.WithIncludes(c.Emit.Includes...),
	}
}
