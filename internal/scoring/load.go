package scoring

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadPolicySet reads a YAML or JSON policy file layered over the defaults. A category
// present in the file replaces the default category entirely.
func LoadPolicySet(path string) (*PolicySet, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &PolicyError{Message: "failed to read policy file " + path, Cause: err}
	}

	set := DefaultPolicySet()
	if err := k.UnmarshalWithConf("", set, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, &PolicyError{Message: "failed to decode policy file " + path, Cause: err}
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
