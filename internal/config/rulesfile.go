package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/backmassage/lutrules/internal/rules"
)

// LoadRules reads the authored rule rows from a TOML file, preserving
// authoring order — the order is the rules' priority. Format:
//
//	[[rule]]
//	enabled = true
//	category = "codec"        # codec | resolution | frame-rate | clip-color
//	value = "H.264"
//	lut = "warm.cube"         # catalog display name; "(None - Remove LUT)" clears
//	node = 1
//
// Rows are returned as written, including disabled ones; FromSpecs decides
// which take part in a run.
func LoadRules(path string) ([]rules.Spec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read rules file %s", path)
	}

	var file struct {
		Rule []rules.Spec `mapstructure:"rule"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, errors.Wrapf(err, "parse rules file %s", path)
	}
	return file.Rule, nil
}
