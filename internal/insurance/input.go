package insurance

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Smoker string

const (
	SmokerYes Smoker = "yes"
	SmokerNo  Smoker = "no"
)

type Region string

const (
	RegionNortheast Region = "northeast"
	RegionNorthwest Region = "northwest"
	RegionSoutheast Region = "southeast"
	RegionSouthwest Region = "southwest"
)

// Regions lists the regions in display order.
var Regions = []Region{RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest}

// DemographicInput is the record submitted to the prediction service.
type DemographicInput struct {
	Age      int     `json:"age" validate:"gte=18,lte=100"`
	Sex      Sex     `json:"sex" validate:"oneof=male female"`
	BMI      float64 `json:"bmi" validate:"gte=15,lte=50"`
	Children int     `json:"children" validate:"gte=0,lte=10"`
	Smoker   Smoker  `json:"smoker" validate:"oneof=yes no"`
	Region   Region  `json:"region" validate:"oneof=northeast northwest southeast southwest"`
}

var ErrMissingField = errors.New("missing field")

// FieldError describes one invalid field of a DemographicInput.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failing field.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

var fieldRules = map[string]string{
	"age":      "age must be between 18 and 100",
	"sex":      "sex must be male or female",
	"bmi":      "bmi must be between 15.0 and 50.0",
	"children": "children must be between 0 and 10",
	"smoker":   "smoker must be yes or no",
	"region":   "region must be northeast, northwest, southeast or southwest",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		})
	})
	return validate
}

// Validate checks every field against its documented range or enum.
func (in DemographicInput) Validate() error {
	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldRules[fe.Field()],
		})
	}
	return out
}

// FormValues holds the raw, untyped form fields as typed by a user.
type FormValues struct {
	Age      string `json:"age"`
	Sex      string `json:"sex"`
	BMI      string `json:"bmi"`
	Children string `json:"children"`
	Smoker   string `json:"smoker"`
	Region   string `json:"region"`
}

// Complete reports whether all six fields are non-empty.
func (f FormValues) Complete() bool {
	for _, v := range []string{f.Age, f.Sex, f.BMI, f.Children, f.Smoker, f.Region} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// ParseForm coerces raw form values into a DemographicInput. Age and
// children become integers (fractional input is truncated), bmi a decimal.
// Values that are not numbers come back as a *ValidationError. Ranges are
// not checked here; call Validate.
func ParseForm(f FormValues) (DemographicInput, error) {
	if !f.Complete() {
		return DemographicInput{}, ErrMissingField
	}

	var bad []FieldError
	notNumber := func(field string) {
		bad = append(bad, FieldError{Field: field, Message: field + " must be a number"})
	}

	age, ok := parseWhole(f.Age)
	if !ok {
		notNumber("age")
	}
	children, ok := parseWhole(f.Children)
	if !ok {
		notNumber("children")
	}
	bmi, ok := parseNumber(f.BMI)
	if !ok {
		notNumber("bmi")
	}
	if len(bad) > 0 {
		return DemographicInput{}, &ValidationError{Fields: bad}
	}

	return DemographicInput{
		Age:      age,
		Sex:      Sex(normalize(f.Sex)),
		BMI:      bmi,
		Children: children,
		Smoker:   Smoker(normalize(f.Smoker)),
		Region:   Region(normalize(f.Region)),
	}, nil
}

func parseWhole(s string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n, true
	}
	v, ok := parseNumber(s)
	return int(v), ok
}

// parseNumber accepts finite decimals only.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
