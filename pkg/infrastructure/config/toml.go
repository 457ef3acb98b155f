package config

import (
	"bytes"
	"errors"

	"github.com/knadh/koanf/v2"
	"github.com/pelletier/go-toml/v2"
)

type tomlParser struct{}

// TOMLParser returns a koanf parser backed by go-toml
func TOMLParser() koanf.Parser {
	return tomlParser{}
}

func (tomlParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := toml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (tomlParser) Marshal(o map[string]interface{}) ([]byte, error) {
	return toml.Marshal(o)
}

// defaultsProvider feeds Default() into koanf as the lowest layer
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Default().WriteTOML(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("defaults provider does not support this method")
}
