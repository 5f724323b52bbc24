package context

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Options is the compile-option table a Context exposes through
// Option(name). It is loaded the way the teacher loads its project
// manifest: a flat table decoded from TOML.
type Options struct {
	Values map[string]string `toml:"options"`
}

func NewOptions() *Options {
	return &Options{Values: make(map[string]string)}
}

// LoadOptionsFile decodes an options table from a TOML file such as
// ".graphir.toml". A missing file yields an empty, valid Options.
func LoadOptionsFile(path string) (*Options, error) {
	opts := NewOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, opts); err != nil {
		return nil, err
	}
	if opts.Values == nil {
		opts.Values = make(map[string]string)
	}
	return opts, nil
}

func (o *Options) Get(name string) (string, bool) {
	v, ok := o.Values[name]
	return v, ok
}

func (o *Options) Set(name, value string) {
	o.Values[name] = value
}
