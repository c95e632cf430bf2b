package signing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/onflow/flow-signer/model/errors"
	"github.com/onflow/flow-signer/model/flow"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("flow_address", func(fl validator.FieldLevel) bool {
		_, err := flow.StringToAddress(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register flow_address validation: %v", err))
	}

	if err := v.RegisterValidation("flow_identifier", func(fl validator.FieldLevel) bool {
		_, err := flow.HexStringToIdentifier(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register flow_identifier validation: %v", err))
	}

	return v
}

// Validate checks the structure of the input. Every violation is reported in
// a single EncodingError.
//
// Chain specific rules, such as address validity on the chain, are checked
// when the transaction intent is built.
func (in *SigningInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewEncodingErrorf("", "could not validate signing input: %w", err)
	}

	var result *multierror.Error
	for _, fieldErr := range fieldErrs {
		result = multierror.Append(result, fmt.Errorf("%s failed on %q", fieldErr.Namespace(), fieldErr.Tag()))
	}

	field := ""
	if len(fieldErrs) == 1 {
		field = fieldErrs[0].Namespace()
	}
	return errors.EncodingError{Field: field, Err: result}
}

// HandleIDs returns the IDs of the key handles of the input, in key slot order.
func (in *SigningInput) HandleIDs() []string {
	ids := make([]string, 0, len(in.Keys))
	for _, key := range in.Keys {
		if key.Handle != nil {
			ids = append(ids, key.Handle.ID())
		}
	}
	return ids
}
