/*
Package yaml provides methods to parse feature.Attribute specifications,
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"
	"sort"

	"github.com/Gakkilovemath/mlpack/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadSchema takes a slice of bytes with an attribute specification in YML
and returns a feature.Schema parsed from it or an error.
The YML is expected to be an object containing a features property. The
value for this should be an object with a property for each attribute
with its name and either a string value of 'numeric' for numeric
attributes or a list of valid values for categorical attributes.
Attributes are ordered by name so the same document always yields the
same dimension layout.
*/
func ReadSchema(md []byte) (*feature.Schema, error) {
	metadata := struct {
		Features map[string]interface{}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml attributes: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	names := make([]string, 0, len(metadata.Features))
	for fn := range metadata.Features {
		names = append(names, fn)
	}
	sort.Strings(names)
	attributes := make([]*feature.Attribute, 0, len(names))
	for _, fn := range names {
		switch values := metadata.Features[fn].(type) {
		case string:
			if values != "numeric" && values != "continuous" {
				return nil, fmt.Errorf("invalid declaration %q for attribute %s", values, fn)
			}
			attributes = append(attributes, feature.NewNumericAttribute(fn))
		case []interface{}:
			stringVs := make([]string, 0, len(values))
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			a, err := feature.NewCategoricalAttribute(fn, stringVs)
			if err != nil {
				return nil, err
			}
			attributes = append(attributes, a)
		default:
			return nil, fmt.Errorf("invalid attribute declaration of type %T", values)
		}
	}
	return feature.NewSchema(attributes)
}

/*
ReadSchemaFromFile takes a filepath string, reads its contents and uses
ReadSchema to parse it and return the schema or an error. If the file
indicated by the filepath cannot be opened for reading an error will be
returned.
*/
func ReadSchemaFromFile(filepath string) (*feature.Schema, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading attributes yml file %s: %v", filepath, err)
	}
	s, err := ReadSchema(md)
	if err != nil {
		err = fmt.Errorf("parsing attributes yml file %s: %v", filepath, err)
	}
	return s, err
}
