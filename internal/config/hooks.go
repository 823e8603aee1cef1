package config

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	shell "github.com/kballard/go-shellquote"

	"github.com/olusolaa/stack-sync/internal/errors"
)

// DecodeHook is the viper decode hook for Config: durations, comma
// separated lists and SAM style parameter overrides.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		StringToParameterMapHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// StringToParameterMapHookFunc decodes a string into map[string]string with
// ParseParameterOverrides.
func StringToParameterMapHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(map[string]string{}) {
			return data, nil
		}
		return ParseParameterOverrides(data.(string))
	}
}

// ParseParameterOverrides accepts both "Key=Value Key2=Value2" and
// "ParameterKey=Key,ParameterValue=Value" forms. Fields are split with shell
// quoting rules, so `Greeting="hello world"` keeps its space. In the long
// form everything after ParameterValue= is the value, commas included.
func ParseParameterOverrides(raw string) (map[string]string, error) {
	fields, err := shell.Split(raw)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigParseError,
			"invalid parameter overrides",
			"Close every quote in --parameter-overrides.")
	}

	out := map[string]string{}
	for _, field := range fields {
		key, value, err := parseOverride(field)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

const (
	longKeyPrefix  = "ParameterKey="
	longValueInfix = ",ParameterValue="
)

func parseOverride(field string) (string, string, error) {
	if rest, ok := strings.CutPrefix(field, longKeyPrefix); ok {
		key, value, found := strings.Cut(rest, longValueInfix)
		if !found || key == "" {
			return "", "", invalidOverride(field)
		}
		return key, value, nil
	}

	key, value, ok := strings.Cut(field, "=")
	if !ok || key == "" {
		return "", "", invalidOverride(field)
	}
	return key, value, nil
}

func invalidOverride(field string) error {
	return errors.NewUserFacing(errors.CodeConfigParseError,
		"invalid parameter override "+field,
		"Use Key=Value or ParameterKey=Key,ParameterValue=Value.")
}
