package myhttp

import (
	"fmt"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/selfcheckout/lib/myerrors"
)

var (
	formDecoder = formcodec.NewDecoder()
	validate    = validator.New()
)

// DecodeForm parses url-encoded form values into dst and applies its validate-tags.
func DecodeForm(r *http.Request, dst any) error {
	err := r.ParseForm()
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err))
	}

	err = formDecoder.Decode(dst, r.Form)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	err = validate.Struct(dst)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid form: %s", err))
	}

	return nil
}
