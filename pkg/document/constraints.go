package document

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their YAML key so namespaces map onto document paths.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})

	mustRegister(v, schema.TagIdentifier, func(fl validator.FieldLevel) bool {
		return schema.IsIdentifier(fl.Field().String())
	})
	mustRegister(v, schema.TagRefreshInterval, func(fl validator.FieldLevel) bool {
		return schema.IsRefreshInterval(fl.Field().String())
	})
	mustRegister(v, schema.TagDimensionFormat, func(fl validator.FieldLevel) bool {
		f := schema.Format(fl.Field().String())
		return f.IsTimeFormat() || schema.Contains(schema.Formats, string(f))
	})
	for tag, values := range schema.EnumValues {
		if tag == schema.TagDimensionFormat {
			continue
		}
		allowed := values
		mustRegister(v, tag, func(fl validator.FieldLevel) bool {
			return schema.Contains(allowed, fl.Field().String())
		})
	}
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("document: register %q: %v", tag, err))
	}
}

// checkConstraints runs the tag constraints over the decoded file.
func (d *decoder) checkConstraints(f *schema.File) {
	err := validate.Struct(f)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		d.addIssue(nil, err.Error())
		return
	}

	for _, fe := range fieldErrs {
		path := namespacePath(fe.Namespace())
		if d.underFailure(path) {
			continue
		}
		d.addIssue(path, constraintMessage(fe))
	}
}

// checkRules applies the cross-field rules that tags cannot express.
func (d *decoder) checkRules(f *schema.File) {
	for i := range f.Cubes {
		path := []string{"cubes", strconv.Itoa(i)}
		if d.underFailure(path) {
			continue
		}
		if !f.Cubes[i].HasSource() {
			d.addIssue(path, "sql, sql_table, or extends is required")
		}
		d.checkMemberNames(path, &f.Cubes[i])
	}

	if f.IsEmpty() && !d.underFailure([]string{"cubes"}) && !d.underFailure([]string{"views"}) {
		d.addIssue(nil, "File must contain at least one cube or view")
	}
}

// checkMemberNames reports every measure, dimension or segment whose name
// is already taken by an earlier member of the same cube.
func (d *decoder) checkMemberNames(cubePath []string, cube *schema.Cube) {
	first := make(map[string]string)
	check := func(section string, index int, name string) {
		if name == "" {
			return
		}
		path := append(childPath(cubePath, section), strconv.Itoa(index), "name")
		if d.underFailure(path) {
			return
		}
		if at, ok := first[name]; ok {
			d.addIssue(path, fmt.Sprintf("duplicate member name '%s' in cube '%s' (also defined at %s)", name, cube.Name, at))
			return
		}
		first[name] = section + "." + strconv.Itoa(index)
	}

	for j := range cube.Measures {
		check("measures", j, cube.Measures[j].Name)
	}
	for j := range cube.Dimensions {
		check("dimensions", j, cube.Dimensions[j].Name)
	}
	for j := range cube.Segments {
		check("segments", j, cube.Segments[j].Name)
	}
}

// namespacePath converts a validator namespace such as
// "File.cubes[0].measures[1].type" into ["cubes" "0" "measures" "1" "type"].
func namespacePath(ns string) []string {
	parts := strings.Split(ns, ".")
	if len(parts) > 0 {
		parts = parts[1:] // root struct name
	}

	var path []string
	for _, part := range parts {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				path = append(path, part)
				break
			}
			if open > 0 {
				path = append(path, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				path = append(path, part[open+1:])
				break
			}
			path = append(path, part[open+1:open+end])
			part = part[open+end+1:]
		}
	}
	return path
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case schema.TagIdentifier:
		return "must be a valid identifier matching " + schema.IdentifierPattern +
			" (letters, numbers, underscores; cannot start with a number)"
	case schema.TagRefreshInterval:
		return `must be an interval such as "1 hour" or "30 minutes" (matching ` + schema.RefreshIntervalPattern + ")"
	case schema.TagDimensionFormat:
		return "invalid value, expected one of: " + strings.Join(schema.EnumValues[schema.TagDimensionFormat], ", ") +
			", or a time format starting with " + schema.StrftimePrefix
	}
	if values, ok := schema.EnumValues[fe.Tag()]; ok {
		return "invalid value, expected one of: " + strings.Join(values, ", ")
	}
	return fe.Error()
}
