// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Attr is one column of tabular output. Key is a gjson path into a hero
// record, thus the name.
type Attr struct {
	// The gjson path to extract from each record.
	Key string `yaml:"key"`
	// Should this Attr be included in output or is it just intended for
	// sorting?
	Include bool `yaml:"include"`
	// The key to use in the output. This is also the column title when
	// output=text.
	OutputKey string `yaml:"outputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec"`
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the case and length transformations in TransformSpec.
// Only string values are transformed; anything else passes through.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		return value
	}

	// The case transformation that appears last wins. A global spec is
	// prepended to each attr spec so the attr's own setting carries more weight.
	// IOW... --attrs '*::U,name::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same logic as above re: case. A later length overrides an earlier one.
	if a.TransformSpec != "" {
		match := lengthRegex.FindAllString(a.TransformSpec, -1)
		if len(match) != 0 {
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			runes := []rune(result)
			if len(runes) > abs {
				if l < 0 {
					// Keep both ends, elide the middle.
					lr := abs/2 - 1
					if lr < 0 {
						lr = 0
					}
					result = string(runes[:lr]) + ".." + string(runes[len(runes)-lr:])
				} else {
					result = string(runes[:l])
				}
			}
		}
	}

	return result
}

type AttrList []Attr

// String renders the list in --attrs flag form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses each spec from the --attrs flag and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the path to
	// extract from the record. The second is the key to use in the output. The
	// third is the transformation spec. The latter two are optional and the
	// output key defaults to the last segment of the path.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec: %s", spec)
		}

		// A leading ! keeps the attr for sorting but excludes it from output.
		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		attr.Key = strings.TrimPrefix(attr.Key, ".")

		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec: %q", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		if len(fields) == 1 || fields[outputIdx] == "" {
			attr.OutputKey = defaultOutputKey(attr.Key)
		} else {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// An attr that already exists (one of the command defaults, or entered
		// twice) is updated in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one global spec, only the first is used.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

func (a *AttrList) Type() string {
	return "list"
}

// defaultOutputKey is the last path segment with any gjson modifier stripped,
// so "biography.publisher|@unknown" becomes "publisher".
func defaultOutputKey(key string) string {
	if i := strings.Index(key, "|"); i >= 0 {
		key = key[:i]
	}
	segments := strings.Split(key, ".")
	return segments[len(segments)-1]
}
